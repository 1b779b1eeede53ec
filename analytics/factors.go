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

package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/wealthpilot/wp-api/holdings"
	"github.com/wealthpilot/wp-api/refdata"
)

// Style factor names. These are also the keys of the premium table in
// reference data.
const (
	FactorMarket     = "market"
	FactorSize       = "size"
	FactorValue      = "value"
	FactorMomentum   = "momentum"
	FactorQuality    = "quality"
	FactorVolatility = "volatility"
)

var factorNames = []string{
	FactorMarket, FactorSize, FactorValue,
	FactorMomentum, FactorQuality, FactorVolatility,
}

// FactorExposure is one factor's portfolio exposure and its premium
// contribution to expected annual return.
type FactorExposure struct {
	Exposure     float64 `json:"exposure"`
	Contribution float64 `json:"contribution"`
}

// FactorTilts lists the style factors the portfolio leans into or
// away from.
type FactorTilts struct {
	StrongestPositive []string `json:"strongestPositive"`
	StrongestNegative []string `json:"strongestNegative"`
}

// FactorModelResult decomposes the portfolio into six style factors.
type FactorModelResult struct {
	Factors           map[string]FactorExposure `json:"factors"`
	TotalFactorReturn float64                   `json:"totalFactorReturn"`
	ActiveShare       float64                   `json:"activeShare"`
	FactorTilts       FactorTilts               `json:"factorTilts"`
	Interpretation    []string                  `json:"interpretation"`
	Recommendation    []string                  `json:"recommendation"`
	FactorPremiums    map[string]float64        `json:"factorPremiums"`
	DataSource        string                    `json:"dataSource"`
}

// factorProxies derives a holding's loading on each factor from
// fundamental attributes using deterministic thresholds; a statistical
// regression is deliberately not attempted on a single snapshot.
// Absent attributes contribute a neutral zero loading.
func factorProxies(h *holdings.Holding) map[string]float64 {
	proxies := map[string]float64{
		FactorMarket:     h.MarketBeta(),
		FactorSize:       0,
		FactorValue:      0,
		FactorMomentum:   0,
		FactorQuality:    0,
		FactorVolatility: 0,
	}

	if h.MarketCap != nil {
		switch {
		case *h.MarketCap < 2e9:
			proxies[FactorSize] = 0.5
		case *h.MarketCap < 10e9:
			proxies[FactorSize] = 0
		default:
			proxies[FactorSize] = -0.3
		}
	}

	if h.PERatio != nil {
		switch {
		case *h.PERatio < 15:
			proxies[FactorValue] = 0.4
		case *h.PERatio > 25:
			proxies[FactorValue] = -0.3
		}
	}

	if h.ROE != nil {
		switch {
		case *h.ROE > 0.15:
			proxies[FactorQuality] = 0.3
		case *h.ROE < 0.05:
			proxies[FactorQuality] = -0.2
		}
	}

	if h.Volatility != nil {
		switch {
		case *h.Volatility > 0.30:
			proxies[FactorVolatility] = 0.4
		case *h.Volatility < 0.15:
			proxies[FactorVolatility] = -0.3
		}
	}

	if h.Momentum != nil {
		proxies[FactorMomentum] = *h.Momentum
	}

	return proxies
}

// AnalyzeFactors computes weight-linear factor exposures for the
// snapshot and attributes expected return using the premium table
// from reference data.
func AnalyzeFactors(all []holdings.Holding) (*FactorModelResult, error) {
	if len(all) == 0 {
		return nil, holdings.ErrNoHoldings
	}

	weights := holdings.Weights(all)
	premiums, source := refdata.FactorPremiums()

	exposures := make(map[string]float64, len(factorNames))
	for ii := range all {
		proxies := factorProxies(&all[ii])
		for _, name := range factorNames {
			exposures[name] += weights[ii] * proxies[name]
		}
	}

	factors := make(map[string]FactorExposure, len(factorNames))
	totalFactorReturn := 0.0
	positive := []string{}
	negative := []string{}

	for _, name := range factorNames {
		exposure := exposures[name]
		contribution := exposure * premiums[name]
		totalFactorReturn += contribution

		factors[name] = FactorExposure{
			Exposure:     round2(exposure),
			Contribution: round2(contribution * 100), // percent
		}

		// market is tracked through activeShare, not the tilt lists
		if name == FactorMarket {
			continue
		}
		if exposure > 0.1 {
			positive = append(positive, name)
		} else if exposure < -0.1 {
			negative = append(negative, name)
		}
	}

	sort.Strings(positive)
	sort.Strings(negative)

	activeShare := math.Abs(exposures[FactorMarket]-1.0) * 100

	return &FactorModelResult{
		Factors:           factors,
		TotalFactorReturn: round2(totalFactorReturn * 100),
		ActiveShare:       round2(activeShare),
		FactorTilts: FactorTilts{
			StrongestPositive: positive,
			StrongestNegative: negative,
		},
		Interpretation: factorInterpretation(exposures),
		Recommendation: factorRecommendation(exposures),
		FactorPremiums: premiums,
		DataSource:     fmt.Sprintf("%s (version %s)", source, refdata.Version()),
	}, nil
}

func factorInterpretation(exposures map[string]float64) []string {
	notes := []string{}

	market := exposures[FactorMarket]
	switch {
	case market > 1.1:
		notes = append(notes, fmt.Sprintf("Market beta of %.2f: the portfolio is more volatile than the market.", market))
	case market < 0.9:
		notes = append(notes, fmt.Sprintf("Market beta of %.2f: the portfolio is defensive relative to the market.", market))
	default:
		notes = append(notes, fmt.Sprintf("Market beta of %.2f: the portfolio tracks broad market movements.", market))
	}

	if exposures[FactorSize] > 0.1 {
		notes = append(notes, "Tilted toward small-cap stocks, which adds return potential and volatility.")
	} else if exposures[FactorSize] < -0.1 {
		notes = append(notes, "Tilted toward large-cap stocks, favoring stability over the size premium.")
	}

	if exposures[FactorValue] > 0.1 {
		notes = append(notes, "Value tilt: holdings trade at low earnings multiples.")
	} else if exposures[FactorValue] < -0.1 {
		notes = append(notes, "Growth tilt: holdings trade at high earnings multiples.")
	}

	if exposures[FactorMomentum] > 0.1 {
		notes = append(notes, "Momentum tilt: recent winners are overweighted.")
	}

	if exposures[FactorQuality] > 0.1 {
		notes = append(notes, "Quality tilt: profitable, high-ROE businesses are overweighted.")
	} else if exposures[FactorQuality] < -0.1 {
		notes = append(notes, "Low-quality tilt: several holdings have weak profitability.")
	}

	if exposures[FactorVolatility] > 0.1 {
		notes = append(notes, "High-volatility tilt, which has historically carried a negative premium.")
	}

	return notes
}

func factorRecommendation(exposures map[string]float64) []string {
	recs := []string{}

	if exposures[FactorMarket] > 1.2 {
		recs = append(recs, "Consider lower-beta holdings to reduce drawdowns in market selloffs.")
	}
	if exposures[FactorVolatility] > 0.1 {
		recs = append(recs, "Reduce high-volatility positions; the volatility factor premium is negative.")
	}
	if exposures[FactorQuality] < -0.1 {
		recs = append(recs, "Rotate toward higher-ROE businesses to improve the quality exposure.")
	}
	if exposures[FactorValue] < -0.1 && exposures[FactorMomentum] < 0.1 {
		recs = append(recs, "Growth-heavy portfolio without momentum support; watch valuation risk.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Factor exposures are balanced; no changes suggested.")
	}

	return recs
}
