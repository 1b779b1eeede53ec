// Copyright 2025-2026
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

package analytics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wealthpilot/wp-api/analytics"
	"github.com/wealthpilot/wp-api/holdings"
)

var _ = Describe("Correlation", func() {
	Describe("when fewer than two assets carry return data", func() {
		It("should reject an empty snapshot", func() {
			_, err := analytics.AnalyzeCorrelation(nil)
			Expect(err).To(MatchError(holdings.ErrTooFewAssets))
		})

		It("should reject a single asset", func() {
			_, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "AAPL", Returns: []float64{0.01, 0.02}},
			})
			Expect(err).To(MatchError(holdings.ErrTooFewAssets))
		})

		It("should not count assets without return series", func() {
			_, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "AAPL", Returns: []float64{0.01, 0.02}},
				{Symbol: "CASH"},
			})
			Expect(err).To(MatchError(holdings.ErrTooFewAssets))
		})
	})

	Describe("with identical return series", func() {
		var result *analytics.CorrelationResult

		BeforeEach(func() {
			var err error
			returns := []float64{0.01, -0.02, 0.03, 0.01, -0.01}
			result, err = analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "A", Returns: returns},
				{Symbol: "B", Returns: returns},
			})
			Expect(err).To(BeNil())
		})

		It("should report a perfect correlation of 1", func() {
			Expect(result.Matrix[0][1]).To(Equal(1.0))
			Expect(result.Pairs).To(HaveLen(1))
			Expect(result.Pairs[0].Correlation).To(Equal(1.0))
			Expect(result.Pairs[0].Relationship).To(Equal("Strong Positive"))
		})

		It("should flag the pair as highly correlated", func() {
			Expect(result.Analysis.HighlyCorrelated).To(ConsistOf("A/B"))
			Expect(result.Analysis.Diversified).To(BeEmpty())
		})

		It("should report a diversification score of zero", func() {
			Expect(result.Analysis.AverageCorrelation).To(Equal(1.0))
			Expect(result.Analysis.DiversificationScore).To(BeZero())
		})
	})

	Describe("with perfectly opposed return series", func() {
		It("should report a correlation of -1", func() {
			result, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "LONG", Returns: []float64{0.01, -0.02, 0.03}},
				{Symbol: "SHORT", Returns: []float64{-0.01, 0.02, -0.03}},
			})
			Expect(err).To(BeNil())
			Expect(result.Pairs[0].Correlation).To(Equal(-1.0))
			Expect(result.Pairs[0].Relationship).To(Equal("Strong Negative"))
			Expect(result.Analysis.Diversified).To(ConsistOf("LONG/SHORT"))
		})
	})

	Describe("matrix shape", func() {
		var result *analytics.CorrelationResult

		BeforeEach(func() {
			var err error
			result, err = analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "A", Returns: []float64{0.01, -0.02, 0.03, 0.00}},
				{Symbol: "B", Returns: []float64{0.02, 0.01, -0.01, 0.03}},
				{Symbol: "C", Returns: []float64{-0.01, 0.00, 0.02, -0.02}},
			})
			Expect(err).To(BeNil())
		})

		It("should list the symbols in input order", func() {
			Expect(result.Symbols).To(Equal([]string{"A", "B", "C"}))
		})

		It("should have ones on the diagonal", func() {
			for ii := range result.Matrix {
				Expect(result.Matrix[ii][ii]).To(Equal(1.0))
			}
		})

		It("should be symmetric", func() {
			for ii := range result.Matrix {
				for jj := range result.Matrix {
					Expect(result.Matrix[ii][jj]).To(Equal(result.Matrix[jj][ii]))
				}
			}
		})

		It("should bound every coefficient to [-1, 1]", func() {
			for _, row := range result.Matrix {
				for _, r := range row {
					Expect(r).To(BeNumerically(">=", -1))
					Expect(r).To(BeNumerically("<=", 1))
				}
			}
		})

		It("should emit one pair per unordered combination", func() {
			Expect(result.Pairs).To(HaveLen(3))
		})
	})

	Describe("with a constant return series", func() {
		It("should define the correlation as zero rather than NaN", func() {
			result, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "FLAT", Returns: []float64{0.01, 0.01, 0.01}},
				{Symbol: "MOVER", Returns: []float64{0.02, -0.01, 0.03}},
			})
			Expect(err).To(BeNil())
			Expect(result.Pairs[0].Correlation).To(BeZero())
			Expect(result.Pairs[0].Relationship).To(Equal("Weak/None"))
		})
	})

	Describe("with return series of unequal length", func() {
		It("should truncate to the shorter series", func() {
			result, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "A", Returns: []float64{0.01, -0.02, 0.03, 0.99, -0.99}},
				{Symbol: "B", Returns: []float64{0.01, -0.02, 0.03}},
			})
			Expect(err).To(BeNil())
			// the overlapping window is identical
			Expect(result.Pairs[0].Correlation).To(Equal(1.0))
		})
	})

	Describe("recommendations", func() {
		It("should warn when holdings move in lockstep", func() {
			returns := []float64{0.01, -0.02, 0.03}
			result, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "A", Returns: returns},
				{Symbol: "B", Returns: returns},
			})
			Expect(err).To(BeNil())
			Expect(result.Recommendation).To(ContainSubstring("lockstep"))
		})

		It("should endorse a well diversified mix", func() {
			result, err := analytics.AnalyzeCorrelation([]holdings.Holding{
				{Symbol: "A", Returns: []float64{0.01, -0.02, 0.03}},
				{Symbol: "B", Returns: []float64{-0.01, 0.02, -0.03}},
			})
			Expect(err).To(BeNil())
			Expect(result.Recommendation).To(ContainSubstring("good diversification"))
		})
	})
})
