// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package holdings defines the shared value types consumed by every
// analyzer: a snapshot of portfolio holdings and the stress-test
// scenario description. A snapshot is immutable for the duration of a
// call; weights are always derived from market values and never
// supplied by the caller.
package holdings

import "errors"

const (
	// DefaultBeta is assumed when a holding does not report one.
	DefaultBeta = 1.0

	// DefaultSector is the fallback bucket for sector-based lookups.
	DefaultSector = "Default"
)

var (
	ErrNoHoldings   = errors.New("no holdings provided")
	ErrTooFewAssets = errors.New("at least two assets with return history are required")
)

// ESGScore carries the three ESG pillars plus the combined total.
type ESGScore struct {
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	Total         float64 `json:"total"`
}

// Holding is a single position in a portfolio snapshot. Optional
// numeric attributes are pointers so that an absent field can be told
// apart from a legitimate zero; accessors apply the documented
// defaults.
type Holding struct {
	Symbol  string    `json:"symbol"`
	Value   float64   `json:"value"`
	Returns []float64 `json:"returns,omitempty"`

	Beta       *float64 `json:"beta,omitempty"`
	Sector     string   `json:"sector,omitempty"`
	MarketCap  *float64 `json:"marketCap,omitempty"`
	PERatio    *float64 `json:"peRatio,omitempty"`
	ROE        *float64 `json:"roe,omitempty"`
	Momentum   *float64 `json:"momentum,omitempty"`
	Volatility *float64 `json:"volatility,omitempty"`

	ESG *ESGScore `json:"esg,omitempty"`
}

// MarketBeta returns the holding's beta, defaulting to 1.0.
func (h *Holding) MarketBeta() float64 {
	if h.Beta == nil {
		return DefaultBeta
	}
	return *h.Beta
}

// SectorName returns the holding's sector, or the default bucket.
func (h *Holding) SectorName() string {
	if h.Sector == "" {
		return DefaultSector
	}
	return h.Sector
}

// Scenario describes a hypothetical market shock applied uniformly to
// the market and scaled per holding by beta.
type Scenario struct {
	Name        string  `json:"name"`
	MarketDrop  float64 `json:"marketDrop"`
	Description string  `json:"description"`
}

// TotalValue sums the market values of all holdings.
func TotalValue(all []Holding) float64 {
	total := 0.0
	for ii := range all {
		total += all[ii].Value
	}
	return total
}

// Weights derives portfolio weights from market values. For a
// non-empty list with positive total value the weights sum to 1
// (within floating-point tolerance); a zero total value yields all
// zero weights rather than NaN.
func Weights(all []Holding) []float64 {
	weights := make([]float64, len(all))
	total := TotalValue(all)
	if total == 0 {
		return weights
	}
	for ii := range all {
		weights[ii] = all[ii].Value / total
	}
	return weights
}
