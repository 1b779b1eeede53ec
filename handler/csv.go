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
	"github.com/wealthpilot/wp-api/csvimport"

	"github.com/gofiber/fiber/v2"
)

// ImportCSV parses an uploaded holdings CSV and returns the parsed
// rows with any per-row errors; nothing is persisted.
func ImportCSV(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty request body"})
	}

	return c.JSON(csvimport.Parse(string(body)))
}

// ImportTemplate serves the CSV import template as a download.
func ImportTemplate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=import_template.csv`)
	return c.SendString(csvimport.ImportTemplate())
}

// SampleCSV serves a sample holdings CSV as a download.
func SampleCSV(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=sample_portfolio.csv`)
	return c.SendString(csvimport.SampleImport())
}
