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
)

// HoldingImpact is the effect of one scenario on one holding.
type HoldingImpact struct {
	Symbol        string  `json:"symbol"`
	CurrentValue  float64 `json:"currentValue"`
	Beta          float64 `json:"beta"`
	Loss          float64 `json:"loss"`
	NewValue      float64 `json:"newValue"`
	PercentChange float64 `json:"percentChange"`
}

// ScenarioResult is the portfolio-wide outcome of one scenario.
type ScenarioResult struct {
	Scenario          string          `json:"scenario"`
	Description       string          `json:"description"`
	MarketDrop        float64         `json:"marketDrop"`
	PortfolioLoss     float64         `json:"portfolioLoss"`
	NewPortfolioValue float64         `json:"newPortfolioValue"`
	PercentageLoss    float64         `json:"percentageLoss"`
	HoldingImpacts    []HoldingImpact `json:"holdingImpacts"`
}

// Recommendation summarizes the action the worst-case loss calls for.
type Recommendation struct {
	Level   string   `json:"level"`
	Message string   `json:"message"`
	Actions []string `json:"actions"`
}

// StressTestResult holds all scenario outcomes sorted ascending by
// percentage loss, so index 0 is the worst case.
type StressTestResult struct {
	CurrentPortfolioValue float64          `json:"currentPortfolioValue"`
	Scenarios             []ScenarioResult `json:"scenarios"`
	WorstCase             *ScenarioResult  `json:"worstCase"`
	BestCase              *ScenarioResult  `json:"bestCase"`
	AverageLoss           float64          `json:"averageLoss"`
	Recommendation        Recommendation   `json:"recommendation"`
}

// DefaultScenarios returns the built-in catalog of hypothetical
// market shocks. Callers may pass their own list to RunStressTest to
// replace the catalog entirely.
func DefaultScenarios() []holdings.Scenario {
	return []holdings.Scenario{
		{Name: "2008 Financial Crisis", MarketDrop: -0.38, Description: "Global financial meltdown triggered by the subprime mortgage collapse"},
		{Name: "COVID Crash", MarketDrop: -0.34, Description: "Pandemic-driven selloff of March 2020"},
		{Name: "Tech Bubble", MarketDrop: -0.45, Description: "Dot-com bubble burst of 2000-2002"},
		{Name: "Flash Crash", MarketDrop: -0.10, Description: "Sudden intraday liquidity-driven decline"},
		{Name: "Recession", MarketDrop: -0.25, Description: "Typical recessionary bear market"},
		{Name: "Interest Rate Spike", MarketDrop: -0.15, Description: "Rapid rate increases compressing equity valuations"},
		{Name: "Mild Correction", MarketDrop: -0.10, Description: "Routine market correction"},
		{Name: "Severe Bear Market", MarketDrop: -0.50, Description: "Prolonged severe bear market"},
	}
}

// RunStressTest applies each scenario's market drop to the snapshot,
// scaling per holding by beta: loss = value * marketDrop * beta. A
// nil or empty scenario list selects the default catalog.
func RunStressTest(all []holdings.Holding, scenarios []holdings.Scenario) (*StressTestResult, error) {
	if len(all) == 0 {
		return nil, holdings.ErrNoHoldings
	}

	if len(scenarios) == 0 {
		scenarios = DefaultScenarios()
	}

	totalValue := holdings.TotalValue(all)

	results := make([]ScenarioResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		impacts := make([]HoldingImpact, 0, len(all))
		scenarioLoss := 0.0

		for ii := range all {
			h := &all[ii]
			beta := h.MarketBeta()
			loss := h.Value * scenario.MarketDrop * beta
			scenarioLoss += loss

			impacts = append(impacts, HoldingImpact{
				Symbol:        h.Symbol,
				CurrentValue:  round2(h.Value),
				Beta:          beta,
				Loss:          round2(loss),
				NewValue:      round2(h.Value + loss),
				PercentChange: round2(scenario.MarketDrop * beta * 100),
			})
		}

		percentageLoss := 0.0
		if totalValue > 0 {
			percentageLoss = scenarioLoss / totalValue * 100
		}

		results = append(results, ScenarioResult{
			Scenario:          scenario.Name,
			Description:       scenario.Description,
			MarketDrop:        scenario.MarketDrop,
			PortfolioLoss:     round2(scenarioLoss),
			NewPortfolioValue: round2(totalValue + scenarioLoss),
			PercentageLoss:    round2(percentageLoss),
			HoldingImpacts:    impacts,
		})
	}

	// worst case first
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PercentageLoss < results[j].PercentageLoss
	})

	avgLoss := 0.0
	for _, r := range results {
		avgLoss += r.PercentageLoss
	}
	avgLoss /= float64(len(results))

	worst := &results[0]
	best := &results[len(results)-1]

	return &StressTestResult{
		CurrentPortfolioValue: round2(totalValue),
		Scenarios:             results,
		WorstCase:             worst,
		BestCase:              best,
		AverageLoss:           round2(avgLoss),
		Recommendation:        stressRecommendation(worst),
	}, nil
}

func stressRecommendation(worst *ScenarioResult) Recommendation {
	severity := math.Abs(worst.PercentageLoss)

	switch {
	case severity > 40:
		return Recommendation{
			Level:   "High Risk",
			Message: fmt.Sprintf("The portfolio could lose %.2f%% in a %s scenario. Consider reducing downside exposure.", severity, worst.Scenario),
			Actions: []string{
				"Add defensive assets such as bonds or cash equivalents",
				"Reduce exposure to high-beta holdings",
				"Consider protective put options on the largest positions",
			},
		}
	case severity > 25:
		return Recommendation{
			Level:   "Moderate Risk",
			Message: fmt.Sprintf("The portfolio could lose %.2f%% in a %s scenario.", severity, worst.Scenario),
			Actions: []string{
				"Diversify across additional sectors",
				"Rebalance toward lower-beta holdings",
				"Review position sizing of concentrated holdings",
			},
		}
	default:
		return Recommendation{
			Level:   "Low Risk",
			Message: fmt.Sprintf("Worst modeled loss is %.2f%%. The portfolio is well positioned for market stress.", severity),
			Actions: []string{
				"Maintain the current allocation",
				"Re-run stress tests after significant portfolio changes",
			},
		}
	}
}
