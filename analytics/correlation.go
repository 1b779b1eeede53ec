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

// CorrelationPair is one off-diagonal entry of the matrix with its
// qualitative classification.
type CorrelationPair struct {
	Asset1       string  `json:"asset1"`
	Asset2       string  `json:"asset2"`
	Correlation  float64 `json:"correlation"`
	Relationship string  `json:"relationship"`
}

// CorrelationAnalysis summarizes the pairwise structure.
type CorrelationAnalysis struct {
	HighlyCorrelated     []string `json:"highlyCorrelated"`
	Diversified          []string `json:"diversified"`
	AverageCorrelation   float64  `json:"averageCorrelation"`
	DiversificationScore float64  `json:"diversificationScore"`
}

// CorrelationResult is the full pairwise correlation report.
type CorrelationResult struct {
	Symbols        []string            `json:"symbols"`
	Matrix         [][]float64         `json:"matrix"`
	Pairs          []CorrelationPair   `json:"pairs"`
	Analysis       CorrelationAnalysis `json:"analysis"`
	Recommendation string              `json:"recommendation"`
}

// pearson computes the Pearson correlation coefficient of two return
// series. Series of unequal length are truncated to the shorter one.
// If either variance term is zero, or fewer than two points overlap,
// the correlation is defined as 0 -- this is an explicit policy so a
// constant series never produces NaN.
func pearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return 0
	}
	x = x[:n]
	y = y[:n]

	meanX := stat.Mean(x, nil)
	meanY := stat.Mean(y, nil)

	var num, denomX, denomY float64
	for ii := 0; ii < n; ii++ {
		dx := x[ii] - meanX
		dy := y[ii] - meanY
		num += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0
	}

	return num / (math.Sqrt(denomX) * math.Sqrt(denomY))
}

// classifyCorrelation buckets a coefficient into the qualitative
// relationship labels used in reports.
func classifyCorrelation(r float64) string {
	switch {
	case r > 0.7:
		return "Strong Positive"
	case r > 0.3:
		return "Moderate Positive"
	case r > -0.3:
		return "Weak/None"
	case r > -0.7:
		return "Moderate Negative"
	default:
		return "Strong Negative"
	}
}

// AnalyzeCorrelation builds the symmetric pairwise Pearson matrix for
// all holdings that carry a return series. At least two such assets
// are required.
func AnalyzeCorrelation(all []holdings.Holding) (*CorrelationResult, error) {
	assets := make([]holdings.Holding, 0, len(all))
	for ii := range all {
		if len(all[ii].Returns) > 0 {
			assets = append(assets, all[ii])
		}
	}

	if len(assets) < 2 {
		return nil, holdings.ErrTooFewAssets
	}

	n := len(assets)
	symbols := make([]string, n)
	for ii := range assets {
		symbols[ii] = assets[ii].Symbol
	}

	matrix := make([][]float64, n)
	for ii := range matrix {
		matrix[ii] = make([]float64, n)
		matrix[ii][ii] = 1
	}

	pairs := make([]CorrelationPair, 0, n*(n-1)/2)
	highlyCorrelated := []string{}
	diversified := []string{}
	sum := 0.0

	for ii := 0; ii < n; ii++ {
		for jj := ii + 1; jj < n; jj++ {
			r := pearson(assets[ii].Returns, assets[jj].Returns)
			matrix[ii][jj] = round2(r)
			matrix[jj][ii] = matrix[ii][jj]
			sum += r

			pairs = append(pairs, CorrelationPair{
				Asset1:       symbols[ii],
				Asset2:       symbols[jj],
				Correlation:  round2(r),
				Relationship: classifyCorrelation(r),
			})

			label := fmt.Sprintf("%s/%s", symbols[ii], symbols[jj])
			if r > 0.7 {
				highlyCorrelated = append(highlyCorrelated, label)
			} else if r < 0.3 {
				diversified = append(diversified, label)
			}
		}
	}

	avg := sum / float64(len(pairs))
	score := (1 - avg) * 100

	return &CorrelationResult{
		Symbols: symbols,
		Matrix:  matrix,
		Pairs:   pairs,
		Analysis: CorrelationAnalysis{
			HighlyCorrelated:     highlyCorrelated,
			Diversified:          diversified,
			AverageCorrelation:   round2(avg),
			DiversificationScore: round2(score),
		},
		Recommendation: correlationRecommendation(avg, len(highlyCorrelated)),
	}, nil
}

func correlationRecommendation(avg float64, highCount int) string {
	switch {
	case avg > 0.7:
		return "Holdings move almost in lockstep; add assets from uncorrelated sectors or asset classes."
	case avg > 0.4:
		return fmt.Sprintf("Moderate overall correlation with %d highly correlated pair(s); consider broadening sector exposure.", highCount)
	default:
		return "Correlation structure provides good diversification; maintain the current mix."
	}
}
