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

	"github.com/wealthpilot/wp-api/holdings"

	"gonum.org/v1/gonum/stat"
)

// Parametric one-day VaR z-scores for the 95% and 99% confidence
// levels under the normal-distribution assumption.
const (
	zScore95 = 1.645
	zScore99 = 2.326
)

// ValueAtRisk is the parametric daily value-at-risk estimate.
type ValueAtRisk struct {
	VaR95          float64 `json:"var95"`
	VaR99          float64 `json:"var99"`
	Interpretation string  `json:"interpretation"`
}

// RiskMetrics is the portfolio-level risk/return summary.
type RiskMetrics struct {
	PortfolioValue   float64     `json:"portfolioValue"`
	AnnualizedReturn float64     `json:"annualizedReturn"`
	Volatility       float64     `json:"volatility"`
	SharpeRatio      float64     `json:"sharpeRatio"`
	SortinoRatio     float64     `json:"sortinoRatio"`
	ValueAtRisk      ValueAtRisk `json:"valueAtRisk"`
	RiskRating       string      `json:"riskRating"`
}

// downsideDeviation is the RMS of the negative-return subset about
// zero. A holding with no negative returns contributes nothing to
// downside risk.
func downsideDeviation(returns []float64) float64 {
	downside := 0.0
	count := 0
	for _, r := range returns {
		if r < 0 {
			downside += r * r // much faster than math.Pow
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(downside / float64(count))
}

// CalculateRiskMetrics computes annualized return, volatility, Sharpe
// and Sortino ratios, parametric VaR, and a risk rating for a
// holdings snapshot. riskFreeRate is annualized (e.g. 0.05).
//
// Holdings are aggregated as if pairwise independent: portfolio
// volatility is sqrt(sum((weight*vol)^2)), ignoring cross-holding
// covariance. This mirrors the documented behavior of the original
// engine and is pinned by tests; do not silently "fix" it.
func CalculateRiskMetrics(all []holdings.Holding, riskFreeRate float64) (*RiskMetrics, error) {
	if len(all) == 0 {
		return nil, holdings.ErrNoHoldings
	}

	totalValue := holdings.TotalValue(all)
	weights := holdings.Weights(all)

	var weightedReturn, volSumSq, downsideSumSq float64
	for ii := range all {
		returns := all[ii].Returns
		if len(returns) == 0 {
			continue
		}

		mean := stat.Mean(returns, nil)
		weightedReturn += weights[ii] * mean

		variance := 0.0
		if len(returns) > 1 {
			variance = stat.Variance(returns, nil)
		}
		wVol := weights[ii] * math.Sqrt(variance)
		volSumSq += wVol * wVol

		wDown := weights[ii] * downsideDeviation(returns)
		downsideSumSq += wDown * wDown
	}

	annualizedReturn := weightedReturn * TradingDays
	volatility := math.Sqrt(volSumSq) * math.Sqrt(TradingDays)
	downside := math.Sqrt(downsideSumSq) * math.Sqrt(TradingDays)

	sharpe := 0.0
	if volatility > 0 {
		sharpe = (annualizedReturn - riskFreeRate) / volatility
	}

	sortino := 0.0
	if downside > 0 {
		sortino = (annualizedReturn - riskFreeRate) / downside
	}

	var95 := totalValue * volatility * zScore95 / math.Sqrt(TradingDays)
	var99 := totalValue * volatility * zScore99 / math.Sqrt(TradingDays)

	return &RiskMetrics{
		PortfolioValue:   round2(totalValue),
		AnnualizedReturn: round2(annualizedReturn),
		Volatility:       round2(volatility),
		SharpeRatio:      round2(sharpe),
		SortinoRatio:     round2(sortino),
		ValueAtRisk: ValueAtRisk{
			VaR95:          round2(var95),
			VaR99:          round2(var99),
			Interpretation: fmt.Sprintf("There is a 5%% chance of losing more than $%.2f in a single day", var95),
		},
		RiskRating: riskRating(volatility),
	}, nil
}

// riskRating maps annualized volatility onto the four-tier ladder.
func riskRating(volatility float64) string {
	switch {
	case volatility > 0.30:
		return "High"
	case volatility > 0.20:
		return "Moderate"
	case volatility > 0.10:
		return "Low"
	default:
		return "Very Low"
	}
}
