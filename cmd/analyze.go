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

package cmd

import (
	"fmt"
	"os"

	"github.com/wealthpilot/wp-api/analytics"
	"github.com/wealthpilot/wp-api/common"
	"github.com/wealthpilot/wp-api/holdings"
	"github.com/wealthpilot/wp-api/refdata"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// report is the combined output of all analyzers for one snapshot.
// Sections that fail on input (e.g. correlation with a single asset)
// carry the error message instead of a result.
type report struct {
	RiskMetrics *analytics.RiskMetrics       `json:"riskMetrics,omitempty"`
	StressTest  *analytics.StressTestResult  `json:"stressTest,omitempty"`
	Correlation *analytics.CorrelationResult `json:"correlation,omitempty"`
	Factors     *analytics.FactorModelResult `json:"factors,omitempty"`
	ESG         *analytics.ESGResult         `json:"esg,omitempty"`
	Errors      map[string]string            `json:"errors,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:        "analyze [flags] holdings.json",
	Short:      "Run all analyzers over a holdings snapshot file",
	Args:       cobra.ExactArgs(1),
	ArgAliases: []string{"HoldingsFile"},
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		refdata.Load()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("Path", args[0]).Msg("could not read holdings file")
		}

		var snapshot []holdings.Holding
		if err := json.Unmarshal(raw, &snapshot); err != nil {
			log.Fatal().Err(err).Msg("could not unmarshal holdings json")
		}

		out := report{Errors: map[string]string{}}

		if result, err := analytics.CalculateRiskMetrics(snapshot, viper.GetFloat64("risk.free_rate")); err != nil {
			out.Errors["riskMetrics"] = err.Error()
		} else {
			out.RiskMetrics = result
		}

		if result, err := analytics.RunStressTest(snapshot, nil); err != nil {
			out.Errors["stressTest"] = err.Error()
		} else {
			out.StressTest = result
		}

		if result, err := analytics.AnalyzeCorrelation(snapshot); err != nil {
			out.Errors["correlation"] = err.Error()
		} else {
			out.Correlation = result
		}

		if result, err := analytics.AnalyzeFactors(snapshot); err != nil {
			out.Errors["factors"] = err.Error()
		} else {
			out.Factors = result
		}

		if result, err := analytics.ScoreESG(snapshot); err != nil {
			out.Errors["esg"] = err.Error()
		} else {
			out.ESG = result
		}

		if len(out.Errors) == 0 {
			out.Errors = nil
		}

		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal analysis report")
		}

		fmt.Println(string(encoded))
	},
}
