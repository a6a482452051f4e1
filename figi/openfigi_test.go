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
package figi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/cotahist/figi"
)

var known = map[string]string{
	"BRPETRACNPR6": "BBG000BJ8FB1",
	"BRTBLEACNOR2": "BBG000BDWWM8",
}

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		requests atomic.Int32
		apiKeys  []string
	)

	BeforeEach(func() {
		requests.Store(0)
		apiKeys = nil

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			requests.Add(1)
			apiKeys = append(apiKeys, r.Header.Get("X-OPENFIGI-APIKEY"))

			var query []*figi.OpenFigiQuery
			Expect(json.NewDecoder(r.Body).Decode(&query)).To(Succeed())

			resp := make([]*figi.MappingResponse, len(query))
			for idx, q := range query {
				Expect(q.IdType).To(Equal("ID_ISIN"))
				Expect(q.ExchangeCode).To(Equal("BZ"))

				if composite, ok := known[q.IdValue]; ok {
					resp[idx] = &figi.MappingResponse{Data: []*figi.OpenFigiAsset{{CompositeFIGI: composite, Figi: composite}}}
				} else {
					resp[idx] = &figi.MappingResponse{Warning: "No identifier found."}
				}
			}

			w.Header().Set("Content-Type", "application/json")
			Expect(json.NewEncoder(w).Encode(resp)).To(Succeed())
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	It("maps isins by request position", func() {
		client := figi.New("secret").WithURL(server.URL)

		result, err := client.Lookup(context.Background(), []string{"BRTBLEACNOR2", "BRXXXXACNOR0", "BRPETRACNPR6"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(known))
		Expect(apiKeys).To(Equal([]string{"secret"}))
	})

	It("answers repeated isins from the cache", func() {
		client := figi.New("").WithURL(server.URL)

		_, err := client.Lookup(context.Background(), []string{"BRPETRACNPR6", "BRPETRACNPR6"})
		Expect(err).NotTo(HaveOccurred())

		result, err := client.Lookup(context.Background(), []string{"BRPETRACNPR6"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(HaveKeyWithValue("BRPETRACNPR6", "BBG000BJ8FB1"))
		Expect(requests.Load()).To(Equal(int32(1)))
		Expect(apiKeys).To(Equal([]string{""}))
	})

	It("does not call the service for seeded isins", func() {
		client := figi.New("").WithURL(server.URL)
		client.Seed(map[string]string{"BRVALEACNPA3": "BBG000BBDF39"})

		result, err := client.Lookup(context.Background(), []string{"BRVALEACNPA3"})
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(map[string]string{"BRVALEACNPA3": "BBG000BBDF39"}))
		Expect(requests.Load()).To(BeZero())
	})

	It("reports http errors", func() {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer failing.Close()

		client := figi.New("").WithURL(failing.URL)
		_, err := client.Lookup(context.Background(), []string{"BRPETRACNPR6"})
		Expect(err).To(MatchError(ContainSubstring("429")))
	})
})
