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
)

var _ = Describe("Drawdown", func() {
	Describe("with fewer than two points", func() {
		It("should return a trivial zero result for an empty series", func() {
			result := analytics.AnalyzeDrawdown(nil)
			Expect(result.MaxDrawdown).To(BeZero())
			Expect(result.RecoveryPeriod).To(BeNil())
			Expect(result.DrawdownSeries).To(BeEmpty())
		})

		It("should return a trivial zero result for a single point", func() {
			result := analytics.AnalyzeDrawdown([]float64{100})
			Expect(result.MaxDrawdown).To(BeZero())
			Expect(result.CurrentDrawdown).To(BeZero())
		})
	})

	Describe("with a monotonically rising series", func() {
		It("should report no drawdown at all", func() {
			result := analytics.AnalyzeDrawdown([]float64{100, 110, 120, 130})
			Expect(result.MaxDrawdown).To(BeZero())
			Expect(result.CurrentDrawdown).To(BeZero())
			Expect(result.DrawdownPeriod).To(BeZero())
			for _, point := range result.DrawdownSeries {
				Expect(point.Drawdown).To(BeZero())
			}
		})
	})

	Describe("with a fall and full recovery", func() {
		var result *analytics.DrawdownResult

		BeforeEach(func() {
			result = analytics.AnalyzeDrawdown([]float64{100, 50, 100})
		})

		It("should measure the maximum drawdown in percent", func() {
			Expect(result.MaxDrawdown).To(Equal(50.0))
			Expect(result.PeakValue).To(Equal(100.0))
			Expect(result.TroughValue).To(Equal(50.0))
		})

		It("should measure the peak-to-trough period in points", func() {
			Expect(result.DrawdownPeriod).To(Equal(1))
		})

		It("should find the recovery one point after the trough", func() {
			Expect(result.RecoveryPeriod).NotTo(BeNil())
			Expect(*result.RecoveryPeriod).To(Equal(1))
		})

		It("should end with no current drawdown", func() {
			Expect(result.CurrentDrawdown).To(BeZero())
		})
	})

	Describe("with an unrecovered drawdown", func() {
		var result *analytics.DrawdownResult

		BeforeEach(func() {
			result = analytics.AnalyzeDrawdown([]float64{100, 80, 90})
		})

		It("should report a nil recovery period", func() {
			Expect(result.RecoveryPeriod).To(BeNil())
		})

		It("should keep the current drawdown off the running peak", func() {
			Expect(result.MaxDrawdown).To(Equal(20.0))
			Expect(result.CurrentDrawdown).To(Equal(10.0))
		})
	})

	Describe("with multiple drawdown episodes", func() {
		It("should report the deepest one", func() {
			result := analytics.AnalyzeDrawdown([]float64{100, 90, 100, 120, 60, 120})
			Expect(result.MaxDrawdown).To(Equal(50.0))
			Expect(result.PeakValue).To(Equal(120.0))
			Expect(result.TroughValue).To(Equal(60.0))
			Expect(result.DrawdownPeriod).To(Equal(1))
			Expect(result.RecoveryPeriod).NotTo(BeNil())
			Expect(*result.RecoveryPeriod).To(Equal(1))
		})
	})

	Describe("drawdown series", func() {
		It("should track the per-point drawdown off the running peak", func() {
			result := analytics.AnalyzeDrawdown([]float64{100, 75, 150, 120})
			Expect(result.DrawdownSeries).To(HaveLen(4))
			Expect(result.DrawdownSeries[0].Drawdown).To(BeZero())
			Expect(result.DrawdownSeries[1].Drawdown).To(Equal(25.0))
			Expect(result.DrawdownSeries[2].Drawdown).To(BeZero())
			Expect(result.DrawdownSeries[3].Drawdown).To(Equal(20.0))
		})
	})

	Describe("with zero values in the series", func() {
		It("should not divide by a zero peak", func() {
			result := analytics.AnalyzeDrawdown([]float64{0, 0, 0})
			Expect(result.MaxDrawdown).To(BeZero())
			Expect(result.CurrentDrawdown).To(BeZero())
		})
	})
})
