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

var _ = Describe("FactorModel", func() {
	Describe("when given an empty holdings list", func() {
		It("should return the no-holdings error", func() {
			_, err := analytics.AnalyzeFactors(nil)
			Expect(err).To(MatchError(holdings.ErrNoHoldings))
		})
	})

	Describe("with a single market-neutral holding", func() {
		var result *analytics.FactorModelResult

		BeforeEach(func() {
			var err error
			result, err = analytics.AnalyzeFactors([]holdings.Holding{
				{Symbol: "SPY", Value: 10_000, Beta: f64(1.0)},
			})
			Expect(err).To(BeNil())
		})

		It("should report unit market exposure and zero active share", func() {
			Expect(result.Factors["market"].Exposure).To(Equal(1.0))
			Expect(result.ActiveShare).To(BeZero())
		})

		It("should leave every style factor neutral when attributes are absent", func() {
			for _, name := range []string{"size", "value", "momentum", "quality", "volatility"} {
				Expect(result.Factors[name].Exposure).To(BeZero(), name)
			}
			Expect(result.FactorTilts.StrongestPositive).To(BeEmpty())
			Expect(result.FactorTilts.StrongestNegative).To(BeEmpty())
		})

		It("should attribute only the market premium", func() {
			Expect(result.Factors["market"].Contribution).To(Equal(8.5))
			Expect(result.TotalFactorReturn).To(Equal(8.5))
		})
	})

	Describe("with two holdings of mixed style", func() {
		var result *analytics.FactorModelResult

		BeforeEach(func() {
			var err error
			result, err = analytics.AnalyzeFactors([]holdings.Holding{
				{
					Symbol:     "SMLV",
					Value:      6_000,
					Beta:       f64(1.2),
					MarketCap:  f64(1e9),
					PERatio:    f64(10),
					ROE:        f64(0.20),
					Volatility: f64(0.35),
					Momentum:   f64(0.15),
				},
				{
					Symbol:     "MEGA",
					Value:      4_000,
					Beta:       f64(0.8),
					MarketCap:  f64(50e9),
					PERatio:    f64(30),
					ROE:        f64(0.02),
					Volatility: f64(0.10),
				},
			})
			Expect(err).To(BeNil())
		})

		It("should combine proxies linearly by portfolio weight", func() {
			Expect(result.Factors["market"].Exposure).To(Equal(1.04))
			Expect(result.Factors["size"].Exposure).To(Equal(0.18))
			Expect(result.Factors["value"].Exposure).To(Equal(0.12))
			Expect(result.Factors["quality"].Exposure).To(Equal(0.10))
			Expect(result.Factors["volatility"].Exposure).To(Equal(0.12))
			Expect(result.Factors["momentum"].Exposure).To(Equal(0.09))
		})

		It("should express contributions as annual percent", func() {
			Expect(result.Factors["market"].Contribution).To(Equal(8.84))
			Expect(result.Factors["size"].Contribution).To(Equal(0.32))
			Expect(result.Factors["volatility"].Contribution).To(Equal(-0.18))
			Expect(result.TotalFactorReturn).To(Equal(10.32))
		})

		It("should compute active share from the market exposure", func() {
			Expect(result.ActiveShare).To(BeNumerically("~", 4.0, 0.01))
		})

		It("should tilt toward factors with exposure above 0.1 excluding market", func() {
			Expect(result.FactorTilts.StrongestPositive).To(Equal([]string{"size", "value", "volatility"}))
			Expect(result.FactorTilts.StrongestNegative).To(BeEmpty())
		})

		It("should flag the negative volatility premium in recommendations", func() {
			Expect(result.Recommendation).To(ContainElement(
				ContainSubstring("volatility factor premium is negative")))
		})
	})

	Describe("negative tilts", func() {
		It("should list factors below -0.1", func() {
			result, err := analytics.AnalyzeFactors([]holdings.Holding{
				{Symbol: "MEGA", Value: 1_000, Beta: f64(1.0), MarketCap: f64(100e9), PERatio: f64(40)},
			})
			Expect(err).To(BeNil())
			Expect(result.FactorTilts.StrongestNegative).To(Equal([]string{"size", "value"}))
		})
	})

	Describe("interpretation", func() {
		It("should call a high-beta portfolio more volatile than the market", func() {
			result, err := analytics.AnalyzeFactors([]holdings.Holding{
				{Symbol: "TQQQ", Value: 1_000, Beta: f64(1.5)},
			})
			Expect(err).To(BeNil())
			Expect(result.Interpretation).To(ContainElement(
				ContainSubstring("more volatile than the market")))
		})

		It("should call a low-beta portfolio defensive", func() {
			result, err := analytics.AnalyzeFactors([]holdings.Holding{
				{Symbol: "USMV", Value: 1_000, Beta: f64(0.6)},
			})
			Expect(err).To(BeNil())
			Expect(result.Interpretation).To(ContainElement(
				ContainSubstring("defensive relative to the market")))
		})
	})

	Describe("data provenance", func() {
		It("should name the premium source and reference data version", func() {
			result, err := analytics.AnalyzeFactors([]holdings.Holding{
				{Symbol: "SPY", Value: 1_000},
			})
			Expect(err).To(BeNil())
			Expect(result.DataSource).To(ContainSubstring("version"))
			Expect(result.FactorPremiums).To(HaveKey("market"))
			Expect(result.FactorPremiums).To(HaveLen(6))
		})
	})
})
