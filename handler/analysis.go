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

package handler

import (
	"github.com/wealthpilot/wp-api/analytics"
	"github.com/wealthpilot/wp-api/holdings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type analysisRequest struct {
	Holdings  []holdings.Holding  `json:"holdings"`
	Scenarios []holdings.Scenario `json:"scenarios,omitempty"`
}

type drawdownRequest struct {
	Values []float64 `json:"values"`
}

// inputError renders an analyzer input error as the structured
// {"error": message} body callers display directly.
func inputError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func parseAnalysisRequest(c *fiber.Ctx) (*analysisRequest, error) {
	req := &analysisRequest{}
	if err := json.Unmarshal(c.Body(), req); err != nil {
		log.Warn().Err(err).Str("Path", c.Path()).Msg("bad analysis request")
		return nil, err
	}
	return req, nil
}

// RiskMetrics computes portfolio risk/return metrics for a holdings
// snapshot.
func RiskMetrics(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return fiber.ErrBadRequest
	}

	result, err := analytics.CalculateRiskMetrics(req.Holdings, viper.GetFloat64("risk.free_rate"))
	if err != nil {
		return inputError(c, err)
	}

	return c.JSON(result)
}

// StressTest applies hypothetical market-drop scenarios to the
// snapshot. A scenarios list in the request replaces the built-in
// catalog.
func StressTest(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return fiber.ErrBadRequest
	}

	result, err := analytics.RunStressTest(req.Holdings, req.Scenarios)
	if err != nil {
		return inputError(c, err)
	}

	return c.JSON(result)
}

// Scenarios returns the built-in stress scenario catalog.
func Scenarios(c *fiber.Ctx) error {
	return c.JSON(analytics.DefaultScenarios())
}

// Correlation computes the pairwise correlation matrix of holdings
// with return series.
func Correlation(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return fiber.ErrBadRequest
	}

	result, err := analytics.AnalyzeCorrelation(req.Holdings)
	if err != nil {
		return inputError(c, err)
	}

	return c.JSON(result)
}

// Factors decomposes the snapshot into six style-factor exposures.
func Factors(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return fiber.ErrBadRequest
	}

	result, err := analytics.AnalyzeFactors(req.Holdings)
	if err != nil {
		return inputError(c, err)
	}

	return c.JSON(result)
}

// ESG scores the snapshot's environmental/social/governance profile.
func ESG(c *fiber.Ctx) error {
	req, err := parseAnalysisRequest(c)
	if err != nil {
		return fiber.ErrBadRequest
	}

	result, err := analytics.ScoreESG(req.Holdings)
	if err != nil {
		return inputError(c, err)
	}

	return c.JSON(result)
}

// Drawdown analyzes a chronological portfolio value series.
func Drawdown(c *fiber.Ctx) error {
	req := &drawdownRequest{}
	if err := json.Unmarshal(c.Body(), req); err != nil {
		log.Warn().Err(err).Msg("bad drawdown request")
		return fiber.ErrBadRequest
	}

	return c.JSON(analytics.AnalyzeDrawdown(req.Values))
}
