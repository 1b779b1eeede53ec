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

package router

import (
	"github.com/wealthpilot/wp-api/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes setup router api
func SetupRoutes(app *fiber.App) {
	api := app.Group("/v1")
	api.Get("/", handler.Ping)

	// Analysis
	analysis := api.Group("/analysis")
	analysis.Post("/risk", handler.RiskMetrics)
	analysis.Post("/stress", handler.StressTest)
	analysis.Get("/scenarios", handler.Scenarios)
	analysis.Post("/correlation", handler.Correlation)
	analysis.Post("/factors", handler.Factors)
	analysis.Post("/esg", handler.ESG)
	analysis.Post("/drawdown", handler.Drawdown)

	// CSV import/export
	imports := api.Group("/import")
	imports.Post("/csv", handler.ImportCSV)
	imports.Get("/template", handler.ImportTemplate)
	imports.Get("/sample", handler.SampleCSV)
}
