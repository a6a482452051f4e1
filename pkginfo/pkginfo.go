// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package pkginfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// set at link time with -ldflags "-X github.com/penny-vault/cotahist/pkginfo.Version=..."
var (
	BuildDate  string
	CommitHash string
	Version    string
)

// ModulePath is the import path of this module
const ModulePath = "github.com/penny-vault/cotahist"

// Dependency is a module linked into the cotahist binary
type Dependency struct {
	Path    string `json:"path"`
	Version string `json:"version"`
	Replace string `json:"replace,omitempty"`
	Concern string `json:"concern"`
}

// Info describes the running binary
type Info struct {
	Module       string       `json:"module"`
	Version      string       `json:"version"`
	Commit       string       `json:"commit,omitempty"`
	BuildDate    string       `json:"build_date,omitempty"`
	GoVersion    string       `json:"go_version"`
	Platform     string       `json:"platform"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// concerns maps module path prefixes to the part of cotahist that links them
var concerns = []struct {
	prefix  string
	concern string
}{
	{"github.com/jackc/", "storage"},
	{"github.com/georgysavva/scany", "storage"},
	{"github.com/golang-migrate/", "storage"},
	{"github.com/google/uuid", "storage"},
	{"github.com/xitongsys/", "export"},
	{"github.com/gocarina/gocsv", "export"},
	{"github.com/gosimple/", "export"},
	{"github.com/kothar/go-backblaze", "export"},
	{"github.com/go-resty/", "fetch"},
	{"golang.org/x/time", "fetch"},
	{"github.com/shopspring/decimal", "codec"},
	{"github.com/goccy/go-json", "codec"},
	{"golang.org/x/sync", "codec"},
	{"github.com/alphadose/haxmap", "report"},
	{"github.com/xeonx/timeago", "report"},
	{"golang.org/x/text", "report"},
	{"github.com/charmbracelet/", "cli"},
	{"github.com/spf13/", "cli"},
	{"github.com/pelletier/go-toml", "cli"},
	{"github.com/hako/durafmt", "cli"},
	{"github.com/rs/zerolog", "logging"},
	{"github.com/onsi/", "testing"},
}

// Concern returns the part of cotahist a module serves, or "indirect" for
// modules only pulled in by other dependencies
func Concern(path string) string {
	for _, entry := range concerns {
		if strings.HasPrefix(path, entry.prefix) {
			return entry.concern
		}
	}
	return "indirect"
}

// Read collects the link time variables and the module build info of the
// running binary
func Read() Info {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		log.Error().Msg("could not get package build info")
	}
	return FromBuildInfo(buildInfo)
}

// FromBuildInfo builds an Info from buildInfo, which may be nil. Dependencies
// are sorted by concern and then by path.
func FromBuildInfo(buildInfo *debug.BuildInfo) Info {
	info := Info{
		Module:    ModulePath,
		Version:   Version,
		Commit:    CommitHash,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if buildInfo == nil {
		if info.Version == "" {
			info.Version = "devel"
		}
		return info
	}

	if buildInfo.Main.Path != "" {
		info.Module = buildInfo.Main.Path
	}
	if info.Version == "" && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		info.Version = buildInfo.Main.Version
	}
	if info.Version == "" {
		info.Version = "devel"
	}
	if buildInfo.GoVersion != "" {
		info.GoVersion = buildInfo.GoVersion
	}

	info.Dependencies = make([]Dependency, 0, len(buildInfo.Deps))
	for _, dep := range buildInfo.Deps {
		item := Dependency{
			Path:    dep.Path,
			Version: dep.Version,
			Concern: Concern(dep.Path),
		}
		if dep.Replace != nil {
			item.Replace = dep.Replace.Path
			if dep.Replace.Version != "" {
				item.Replace += "@" + dep.Replace.Version
			}
		}
		info.Dependencies = append(info.Dependencies, item)
	}

	sort.SliceStable(info.Dependencies, func(i, j int) bool {
		a, b := info.Dependencies[i], info.Dependencies[j]
		if a.Concern != b.Concern {
			return concernRank(a.Concern) < concernRank(b.Concern)
		}
		return a.Path < b.Path
	})

	return info
}

func concernRank(concern string) int {
	for idx, name := range []string{"codec", "storage", "export", "fetch", "report", "cli", "logging", "testing"} {
		if name == concern {
			return idx
		}
	}
	return 99
}

// String renders the banner printed by `cotahist version`
func (info Info) String() string {
	commit := info.Commit
	if commit == "" {
		commit = "unknown"
	}
	buildDate := info.BuildDate
	if buildDate == "" {
		buildDate = "unknown"
	}

	return fmt.Sprintf(`cotahist %s (%s) %s

COTAHIST fixed-width codec for B3 daily quote archives
Build Date: %s
Commit: %s
Built with: %s`, info.Version, info.Module, info.Platform, buildDate, commit, info.GoVersion)
}

// DependencyTable renders one line per dependency grouped under the part of
// cotahist that uses it. Replaced modules show their replacement.
func (info Info) DependencyTable() string {
	var builder strings.Builder
	current := ""
	for _, dep := range info.Dependencies {
		if dep.Concern != current {
			if current != "" {
				builder.WriteString("\n")
			}
			current = dep.Concern
			builder.WriteString("[" + current + "]\n")
		}

		builder.WriteString(fmt.Sprintf("  %s=%q", dep.Path, dep.Version))
		if dep.Replace != "" {
			builder.WriteString(" => " + dep.Replace)
		}
		builder.WriteString("\n")
	}
	return builder.String()
}
