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

var _ = Describe("ESG", func() {
	Describe("when given an empty holdings list", func() {
		It("should return the no-holdings error", func() {
			_, err := analytics.ScoreESG(nil)
			Expect(err).To(MatchError(holdings.ErrNoHoldings))
		})
	})

	Describe("with supplied ESG scores", func() {
		It("should use the holding's own scores untouched", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{
					Symbol: "MSFT",
					Value:  1_000,
					Sector: "Technology",
					ESG:    &holdings.ESGScore{Environmental: 75, Social: 80, Governance: 85, Total: 80},
				},
			})
			Expect(err).To(BeNil())
			Expect(result.PortfolioESG.Environmental).To(Equal(75.0))
			Expect(result.PortfolioESG.Social).To(Equal(80.0))
			Expect(result.PortfolioESG.Governance).To(Equal(85.0))
			Expect(result.PortfolioESG.Total).To(Equal(80.0))
			Expect(result.Rating.Label).To(Equal("AAA"))
		})

		It("should fill in a missing total as the rounded pillar mean", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{
					Symbol: "MSFT",
					Value:  1_000,
					ESG:    &holdings.ESGScore{Environmental: 70, Social: 71, Governance: 72},
				},
			})
			Expect(err).To(BeNil())
			Expect(result.PortfolioESG.Total).To(Equal(71.0))
		})
	})

	Describe("with sector baselines", func() {
		It("should score an Energy holding from its sector profile", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "XOM", Value: 1_000, Sector: "Energy"},
			})
			Expect(err).To(BeNil())
			Expect(result.PortfolioESG.Environmental).To(Equal(38.0))
			Expect(result.PortfolioESG.Social).To(Equal(52.0))
			Expect(result.PortfolioESG.Governance).To(Equal(60.0))
			Expect(result.PortfolioESG.Total).To(Equal(50.0))
			Expect(result.Rating.Label).To(Equal("BBB"))
		})

		It("should fall back to the default profile for unknown sectors", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "MYSTERY", Value: 1_000, Sector: "Quantum Widgets"},
			})
			Expect(err).To(BeNil())
			Expect(result.PortfolioESG.Total).To(Equal(55.0))
		})
	})

	Describe("weighted aggregation", func() {
		It("should weight pillar scores by holding value", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "HIGH", Value: 7_500, ESG: &holdings.ESGScore{Environmental: 80, Social: 80, Governance: 80, Total: 80}},
				{Symbol: "LOW", Value: 2_500, ESG: &holdings.ESGScore{Environmental: 40, Social: 40, Governance: 40, Total: 40}},
			})
			Expect(err).To(BeNil())
			Expect(result.PortfolioESG.Total).To(Equal(70.0))
			Expect(result.Rating.Label).To(Equal("AA"))
		})
	})

	Describe("rating ladder", func() {
		ratingFor := func(total float64) string {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "X", Value: 1_000, ESG: &holdings.ESGScore{Environmental: total, Social: total, Governance: total, Total: total}},
			})
			Expect(err).To(BeNil())
			return result.Rating.Label
		}

		It("should be monotone in the total score", func() {
			Expect(ratingFor(85)).To(Equal("AAA"))
			Expect(ratingFor(75)).To(Equal("AA"))
			Expect(ratingFor(65)).To(Equal("A"))
			Expect(ratingFor(55)).To(Equal("BBB"))
			Expect(ratingFor(45)).To(Equal("BB"))
			Expect(ratingFor(30)).To(Equal("B"))
		})
	})

	Describe("leaders and laggards", func() {
		var result *analytics.ESGResult

		BeforeEach(func() {
			var err error
			result, err = analytics.ScoreESG([]holdings.Holding{
				{Symbol: "A", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 90, Social: 90, Governance: 90, Total: 90}},
				{Symbol: "B", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 70, Social: 70, Governance: 70, Total: 70}},
				{Symbol: "C", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 50, Social: 50, Governance: 50, Total: 50}},
				{Symbol: "D", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 30, Social: 30, Governance: 30, Total: 30}},
			})
			Expect(err).To(BeNil())
		})

		It("should list the top three as leaders", func() {
			Expect(result.Analysis.Leaders).To(Equal([]string{"A", "B", "C"}))
		})

		It("should list the bottom three as laggards", func() {
			Expect(result.Analysis.Laggards).To(Equal([]string{"D", "C", "B"}))
		})

		It("should flag the worst laggard in recommendations", func() {
			Expect(result.Recommendation).To(ContainElement(ContainSubstring("D is an ESG laggard")))
		})
	})

	Describe("pillar analysis", func() {
		It("should name the strongest and weakest pillars", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "X", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 40, Social: 60, Governance: 80, Total: 60}},
			})
			Expect(err).To(BeNil())
			Expect(result.Analysis.StrongestPillar).To(Equal("Governance"))
			Expect(result.Analysis.WeakestPillar).To(Equal("Environmental"))
		})

		It("should recommend improving pillars below 50", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "X", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 40, Social: 60, Governance: 80, Total: 60}},
			})
			Expect(err).To(BeNil())
			Expect(result.Recommendation).To(ContainElement(ContainSubstring("environmental score of 40 is weak")))
		})
	})

	Describe("benchmark comparison", func() {
		It("should report the relative score against the configured benchmark", func() {
			result, err := analytics.ScoreESG([]holdings.Holding{
				{Symbol: "X", Value: 1_000, ESG: &holdings.ESGScore{Environmental: 66, Social: 66, Governance: 66, Total: 66}},
			})
			Expect(err).To(BeNil())
			Expect(result.Comparison.SP500Average).To(Equal(66.0))
			Expect(result.Comparison.RelativeScore).To(BeZero())
			Expect(result.Comparison.BenchmarkSource).NotTo(BeEmpty())
		})
	})
})
