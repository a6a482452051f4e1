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
package figi

import (
	"context"
	"fmt"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	OpenFigiMappingURL string = "https://api.openfigi.com/v3/mapping"

	// exchange code of B3 in OpenFIGI
	bovespaExchangeCode = "BZ"
)

type MappingResponse struct {
	Data    []*OpenFigiAsset `json:"data"`
	Error   string           `json:"error"`
	Warning string           `json:"warning"`
}

type OpenFigiAsset struct {
	Figi                string `json:"figi"`
	SecurityType        string `json:"securityType"`
	MarketSector        string `json:"marketSector"`
	Ticker              string `json:"ticker"`
	Name                string `json:"name"`
	ExchangeCode        string `json:"exchCode"`
	ShareClassFIGI      string `json:"shareClassFIGI"`
	CompositeFIGI       string `json:"compositeFIGI"`
	SecurityType2       string `json:"securityType2"`
	SecurityDescription string `json:"securityDescription"`
}

type OpenFigiQuery struct {
	IdType       string `json:"idType"`
	IdValue      string `json:"idValue"`
	ExchangeCode string `json:"exchCode,omitempty"`
}

// Client maps ISIN codes to composite FIGIs. Answers are cached for the
// lifetime of the client.
type Client struct {
	url       string
	apiKey    string
	batchSize int
	http      *resty.Client
	limiter   *rate.Limiter
	cache     *haxmap.Map[string, string]
}

// New creates a client for the OpenFIGI mapping API. Without an API key the
// service accepts 10 jobs per request and 25 requests per minute; with one
// 100 jobs per request and 25 requests every 6 seconds.
func New(apiKey string) *Client {
	client := &Client{
		url:       OpenFigiMappingURL,
		apiKey:    apiKey,
		batchSize: 10,
		http:      resty.New().SetTimeout(30 * time.Second),
		limiter:   rate.NewLimiter(rate.Every(time.Minute/25), 5),
		cache:     haxmap.New[string, string](),
	}

	if apiKey != "" {
		client.batchSize = 100
		client.limiter = rate.NewLimiter(rate.Every((time.Second*6)/25), 10)
	}

	return client
}

// WithURL points the client at a different mapping endpoint
func (client *Client) WithURL(url string) *Client {
	client.url = url
	return client
}

// Seed adds known ISIN to FIGI pairs to the cache
func (client *Client) Seed(known map[string]string) {
	for isin, figi := range known {
		client.cache.Set(isin, figi)
	}
}

// Lookup returns the composite FIGI of every ISIN that OpenFIGI knows about.
// ISINs without a match are absent from the result.
func (client *Client) Lookup(ctx context.Context, isins []string) (map[string]string, error) {
	result := make(map[string]string, len(isins))
	query := make([]*OpenFigiQuery, 0, client.batchSize)
	seen := make(map[string]bool, len(isins))

	flush := func() error {
		if len(query) == 0 {
			return nil
		}

		if err := client.limiter.Wait(ctx); err != nil {
			return err
		}

		mapping, err := client.mapFigis(ctx, query)
		if err != nil {
			return err
		}

		for idx, resp := range mapping {
			if idx >= len(query) {
				break
			}

			isin := query[idx].IdValue
			if resp.Error != "" || len(resp.Data) == 0 {
				log.Debug().Str("ISIN", isin).Str("Error", resp.Error).Str("Warning", resp.Warning).Msg("no figi for isin")
				continue
			}

			figi := resp.Data[0].CompositeFIGI
			client.cache.Set(isin, figi)
			result[isin] = figi
		}

		query = query[:0]
		return nil
	}

	for _, isin := range isins {
		if isin == "" || seen[isin] {
			continue
		}
		seen[isin] = true

		if figi, ok := client.cache.Get(isin); ok {
			result[isin] = figi
			continue
		}

		query = append(query, &OpenFigiQuery{
			IdType:       "ID_ISIN",
			IdValue:      isin,
			ExchangeCode: bovespaExchangeCode,
		})

		if len(query) == client.batchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
	}

	if err := flush(); err != nil {
		return result, err
	}

	return result, nil
}

func (client *Client) mapFigis(ctx context.Context, query []*OpenFigiQuery) ([]*MappingResponse, error) {
	mappingResponse := make([]*MappingResponse, 0, len(query))

	req := client.http.R().
		SetContext(ctx).
		SetBody(query).
		SetResult(&mappingResponse)

	if client.apiKey != "" {
		req.SetHeader("X-OPENFIGI-APIKEY", client.apiKey)
	}

	resp, err := req.Post(client.url)

	log.Debug().Str("URL", client.url).Int("NumISINs", len(query)).Msg("map isins to FIGIs")

	if err != nil {
		log.Error().Err(err).Msg("OpenFigi api call errored out")
		return nil, err
	}

	if resp.StatusCode() >= 400 {
		log.Error().Int("StatusCode", resp.StatusCode()).Str("Body", string(resp.Body())).Msg("openfigi api call returned invalid status code")
		return nil, fmt.Errorf("openfigi returned status %d", resp.StatusCode())
	}

	return mappingResponse, nil
}
