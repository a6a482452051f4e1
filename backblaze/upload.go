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
package backblaze

import (
	"errors"
	"os"
	"path"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/kothar/go-backblaze"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ErrBucketNotFound = errors.New("bucket not found")

// Config holds the credentials and destination bucket of a B2 account
type Config struct {
	ApplicationID  string
	ApplicationKey string
	Bucket         string
}

// ConfigFromViper reads the backblaze.* configuration keys
func ConfigFromViper() Config {
	return Config{
		ApplicationID:  viper.GetString("backblaze.application_id"),
		ApplicationKey: viper.GetString("backblaze.application_key"),
		Bucket:         viper.GetString("backblaze.bucket"),
	}
}

// Enabled reports whether enough configuration is present to upload
func (cfg Config) Enabled() bool {
	return cfg.ApplicationID != "" && cfg.ApplicationKey != "" && cfg.Bucket != ""
}

// RemoteName returns the object name used for fn inside dirname. The
// directory is slugified so that free form labels make valid keys.
func RemoteName(dirname, fn string) string {
	if dirname == "" {
		return filepath.Base(fn)
	}
	return path.Join(slug.Make(dirname), filepath.Base(fn))
}

// Upload copies the local file fn to the configured bucket and returns the
// name of the stored object
func Upload(cfg Config, fn, dirname string) (string, error) {
	b2, err := backblaze.NewB2(backblaze.Credentials{
		KeyID:          cfg.ApplicationID,
		ApplicationKey: cfg.ApplicationKey,
	})
	if err != nil {
		log.Error().Err(err).Str("BucketName", cfg.Bucket).Msg("authorize backblaze failed")
		return "", err
	}

	bucket, err := b2.Bucket(cfg.Bucket)
	if err != nil {
		log.Error().Err(err).Str("BucketName", cfg.Bucket).Msg("lookup bucket failed")
		return "", err
	}
	if bucket == nil {
		log.Error().Str("BucketName", cfg.Bucket).Msg("bucket does not exist")
		return "", ErrBucketNotFound
	}

	reader, err := os.Open(fn)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	outName := RemoteName(dirname, fn)
	file, err := bucket.UploadFile(outName, map[string]string{}, reader)
	if err != nil {
		log.Error().Err(err).Str("FileName", outName).Str("BucketName", cfg.Bucket).Msg("save file to backblaze failed")
		return "", err
	}

	log.Info().Str("FileName", file.Name).Int64("Size", file.ContentLength).Str("ID", file.ID).Msg("uploaded file to backblaze")
	return file.Name, nil
}
