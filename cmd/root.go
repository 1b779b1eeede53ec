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

	"github.com/wealthpilot/wp-api/pkginfo"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Reference data
	viper.BindEnv("refdata.path", "WP_REFDATA")
	rootCmd.PersistentFlags().String("refdata", "", "Path to reference data override file (TOML)")
	viper.BindPFlag("refdata.path", rootCmd.PersistentFlags().Lookup("refdata"))

	// Risk parameters
	viper.BindEnv("risk.free_rate", "WP_RISK_FREE_RATE")
	rootCmd.PersistentFlags().Float64("risk-free-rate", 0.05, "Annualized risk-free rate used in Sharpe/Sortino ratios")
	viper.BindPFlag("risk.free_rate", rootCmd.PersistentFlags().Lookup("risk-free-rate"))

	// Logging configuration
	viper.BindEnv("log.level", "WP_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "WP_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "WP_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print logs in a human readable console format")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     "wpapi",
	Version: pkginfo.Version,
	Short:   "WealthPilot portfolio risk analytics",
	Long:    `A stateless portfolio risk-analytics engine: volatility and return ratios, scenario stress tests, correlation structure, factor exposures, ESG scores, and drawdown statistics served over a JSON API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
