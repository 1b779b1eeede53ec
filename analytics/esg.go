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

// ESGRating is a letter rating with its description.
type ESGRating struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ESGHolding is one holding's scored breakdown row.
type ESGHolding struct {
	Symbol        string  `json:"symbol"`
	Weight        float64 `json:"weight"`
	Environmental float64 `json:"environmental"`
	Social        float64 `json:"social"`
	Governance    float64 `json:"governance"`
	Total         float64 `json:"total"`
	Rating        string  `json:"rating"`
}

// ESGAnalysis names the portfolio's leaders, laggards, and pillar
// strengths.
type ESGAnalysis struct {
	Leaders         []string `json:"leaders"`
	Laggards        []string `json:"laggards"`
	StrongestPillar string   `json:"strongestPillar"`
	WeakestPillar   string   `json:"weakestPillar"`
}

// ESGComparison relates the portfolio to the configured benchmark.
type ESGComparison struct {
	SP500Average    float64 `json:"sp500Average"`
	RelativeScore   float64 `json:"relativeScore"`
	BenchmarkSource string  `json:"benchmarkSource"`
}

// ESGResult is the full portfolio ESG report.
type ESGResult struct {
	PortfolioESG   holdings.ESGScore `json:"portfolioESG"`
	Rating         ESGRating         `json:"rating"`
	Breakdown      []ESGHolding      `json:"breakdown"`
	Analysis       ESGAnalysis       `json:"analysis"`
	Comparison     ESGComparison     `json:"comparison"`
	Recommendation []string          `json:"recommendation"`
}

// holdingESG resolves a holding's ESG scores, preferring supplied
// data and falling back to the deterministic sector baseline. The
// estimator applies no jitter so identical inputs always score
// identically.
func holdingESG(h *holdings.Holding) holdings.ESGScore {
	var score holdings.ESGScore

	if h.ESG != nil {
		score = *h.ESG
	} else {
		baseline := refdata.SectorBaseline(h.SectorName())
		score = holdings.ESGScore{
			Environmental: baseline.Environmental,
			Social:        baseline.Social,
			Governance:    baseline.Governance,
		}
	}

	if score.Total == 0 {
		score.Total = math.Round((score.Environmental + score.Social + score.Governance) / 3)
	}

	return score
}

// esgRating maps a total score onto the monotonic AAA..B ladder.
func esgRating(total float64) ESGRating {
	switch {
	case total >= 80:
		return ESGRating{Label: "AAA", Description: "ESG leader with outstanding sustainability practices"}
	case total >= 70:
		return ESGRating{Label: "AA", Description: "Strong ESG performance across all pillars"}
	case total >= 60:
		return ESGRating{Label: "A", Description: "Above-average ESG performance"}
	case total >= 50:
		return ESGRating{Label: "BBB", Description: "Average ESG performance with room for improvement"}
	case total >= 40:
		return ESGRating{Label: "BB", Description: "Below-average ESG performance"}
	default:
		return ESGRating{Label: "B", Description: "ESG laggard with significant sustainability concerns"}
	}
}

// ScoreESG aggregates holding-level ESG scores into a weighted
// portfolio view with ratings, leaders and laggards, and a benchmark
// comparison.
func ScoreESG(all []holdings.Holding) (*ESGResult, error) {
	if len(all) == 0 {
		return nil, holdings.ErrNoHoldings
	}

	weights := holdings.Weights(all)
	var portE, portS, portG, portTotal float64

	breakdown := make([]ESGHolding, 0, len(all))
	for ii := range all {
		score := holdingESG(&all[ii])

		portE += weights[ii] * score.Environmental
		portS += weights[ii] * score.Social
		portG += weights[ii] * score.Governance
		portTotal += weights[ii] * score.Total

		breakdown = append(breakdown, ESGHolding{
			Symbol:        all[ii].Symbol,
			Weight:        round2(weights[ii] * 100),
			Environmental: round2(score.Environmental),
			Social:        round2(score.Social),
			Governance:    round2(score.Governance),
			Total:         round2(score.Total),
			Rating:        esgRating(score.Total).Label,
		})
	}

	ranked := make([]ESGHolding, len(breakdown))
	copy(ranked, breakdown)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })

	leaders := make([]string, 0, 3)
	for ii := 0; ii < len(ranked) && ii < 3; ii++ {
		leaders = append(leaders, ranked[ii].Symbol)
	}
	laggards := make([]string, 0, 3)
	for ii := len(ranked) - 1; ii >= 0 && len(laggards) < 3; ii-- {
		laggards = append(laggards, ranked[ii].Symbol)
	}

	benchmark, benchmarkSource := refdata.Benchmark()
	relative := 0.0
	if benchmark > 0 {
		relative = (portTotal/benchmark - 1) * 100
	}

	return &ESGResult{
		PortfolioESG: holdings.ESGScore{
			Environmental: round2(portE),
			Social:        round2(portS),
			Governance:    round2(portG),
			Total:         round2(portTotal),
		},
		Rating:    esgRating(portTotal),
		Breakdown: breakdown,
		Analysis: ESGAnalysis{
			Leaders:         leaders,
			Laggards:        laggards,
			StrongestPillar: strongestPillar(portE, portS, portG),
			WeakestPillar:   weakestPillar(portE, portS, portG),
		},
		Comparison: ESGComparison{
			SP500Average:    benchmark,
			RelativeScore:   round2(relative),
			BenchmarkSource: benchmarkSource,
		},
		Recommendation: esgRecommendation(portE, portS, portG, ranked),
	}, nil
}

func strongestPillar(e, s, g float64) string {
	switch {
	case e >= s && e >= g:
		return "Environmental"
	case s >= g:
		return "Social"
	default:
		return "Governance"
	}
}

func weakestPillar(e, s, g float64) string {
	switch {
	case e <= s && e <= g:
		return "Environmental"
	case s <= g:
		return "Social"
	default:
		return "Governance"
	}
}

func esgRecommendation(e, s, g float64, ranked []ESGHolding) []string {
	recs := []string{}

	pillars := []struct {
		name  string
		score float64
	}{
		{"environmental", e},
		{"social", s},
		{"governance", g},
	}
	for _, p := range pillars {
		if p.score < 50 {
			recs = append(recs, fmt.Sprintf("Portfolio %s score of %.0f is weak; favor holdings with stronger %s practices.", p.name, p.score, p.name))
		}
	}

	if len(ranked) > 0 {
		worst := ranked[len(ranked)-1]
		if worst.Total < 40 {
			recs = append(recs, fmt.Sprintf("%s is an ESG laggard (score %.0f); consider replacing it with a sector peer rated BB or better.", worst.Symbol, worst.Total))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "ESG profile is solid; no changes suggested.")
	}

	return recs
}
