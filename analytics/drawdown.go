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

// DrawdownPoint is one sample of the per-point drawdown series,
// drawdown expressed in percent off the running peak.
type DrawdownPoint struct {
	Index    int     `json:"index"`
	Value    float64 `json:"value"`
	Drawdown float64 `json:"drawdown"`
}

// DrawdownResult summarizes peak-to-trough behavior of a portfolio
// value series. RecoveryPeriod is nil when the series never regains
// its pre-drawdown peak.
type DrawdownResult struct {
	MaxDrawdown     float64         `json:"maxDrawdown"`
	PeakValue       float64         `json:"peakValue"`
	TroughValue     float64         `json:"troughValue"`
	DrawdownPeriod  int             `json:"drawdownPeriod"`
	RecoveryPeriod  *int            `json:"recoveryPeriod"`
	CurrentDrawdown float64         `json:"currentDrawdown"`
	DrawdownSeries  []DrawdownPoint `json:"drawdownSeries"`
}

// AnalyzeDrawdown walks a chronological value series tracking the
// running peak. Series shorter than two points yield a trivial zero
// result rather than an error.
func AnalyzeDrawdown(values []float64) *DrawdownResult {
	if len(values) < 2 {
		return &DrawdownResult{DrawdownSeries: []DrawdownPoint{}}
	}

	peak := values[0]
	peakIdx := 0
	runningPeakIdx := 0

	maxDrawdown := 0.0
	troughIdx := 0
	troughValue := values[0]
	peakValue := values[0]

	series := make([]DrawdownPoint, 0, len(values))

	for ii, value := range values {
		if value > peak {
			peak = value
			runningPeakIdx = ii
		}

		drawdown := 0.0
		if peak > 0 {
			drawdown = (peak - value) / peak
		}

		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
			troughIdx = ii
			troughValue = value
			peakIdx = runningPeakIdx
			peakValue = peak
		}

		series = append(series, DrawdownPoint{
			Index:    ii,
			Value:    round2(value),
			Drawdown: round2(drawdown * 100),
		})
	}

	var recoveryPeriod *int
	for ii := troughIdx; ii < len(values); ii++ {
		if values[ii] >= peakValue {
			period := ii - troughIdx
			recoveryPeriod = &period
			break
		}
	}

	currentDrawdown := 0.0
	if peak > 0 {
		currentDrawdown = (peak - values[len(values)-1]) / peak
	}

	return &DrawdownResult{
		MaxDrawdown:     round2(maxDrawdown * 100),
		PeakValue:       round2(peakValue),
		TroughValue:     round2(troughValue),
		DrawdownPeriod:  troughIdx - peakIdx,
		RecoveryPeriod:  recoveryPeriod,
		CurrentDrawdown: round2(currentDrawdown * 100),
		DrawdownSeries:  series,
	}
}
