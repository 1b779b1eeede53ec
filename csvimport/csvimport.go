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

// Package csvimport parses holdings CSV files exported from common
// brokerages. Parsing is tolerant: unknown columns are ignored, bad
// rows are reported and skipped, and the parse never aborts once the
// required columns are located.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Holding is one successfully parsed CSV row.
type Holding struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	CostBasis    float64 `json:"costBasis"`
	PurchaseDate string  `json:"purchaseDate,omitempty"`
	AssetType    string  `json:"assetType"`
}

// Result is the outcome of a CSV parse, including per-row errors and
// advisory warnings.
type Result struct {
	Success        bool      `json:"success"`
	Holdings       []Holding `json:"holdings"`
	Errors         []string  `json:"errors"`
	Warnings       []string  `json:"warnings"`
	TotalRows      int       `json:"totalRows"`
	SuccessfulRows int       `json:"successfulRows"`
}

// columnAliases maps canonical field names to the header spellings
// seen in the wild.
var columnAliases = map[string][]string{
	"symbol":        {"symbol", "ticker", "stock", "sym", "security", "instrument"},
	"name":          {"name", "company", "description", "security name", "stock name", "investment name", "security description"},
	"quantity":      {"quantity", "qty", "shares", "units", "amount", "share quantity"},
	"cost_basis":    {"cost", "cost basis", "price", "purchase price", "avg cost", "average cost", "basis", "cost basis per share", "share price", "price paid"},
	"purchase_date": {"date", "purchase date", "acquired", "acquisition date", "buy date", "trade date"},
	"asset_type":    {"type", "asset type", "security type", "category"},
}

// brokerageSignatures identify the exact header sets emitted by the
// brokerages we recognize, so a detected format can be reported back
// to the user.
var brokerageSignatures = map[string][]string{
	"Fidelity":  {"symbol", "description", "quantity", "cost basis per share"},
	"Schwab":    {"symbol", "description", "quantity", "price"},
	"Vanguard":  {"symbol", "investment name", "shares", "share price"},
	"Robinhood": {"instrument", "name", "quantity", "average cost"},
	"E*Trade":   {"symbol", "security description", "quantity", "price paid"},
}

var symbolCleaner = regexp.MustCompile(`[^A-Z0-9.]`)

var skipSymbols = map[string]bool{
	"": true, "-": true, "N/A": true, "CASH": true, "PENDING": true,
}

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ReplaceAll(name, "-", " ")
}

func mapColumns(headers []string) map[string]int {
	normalized := make([]string, len(headers))
	for ii, h := range headers {
		normalized[ii] = normalizeHeader(h)
	}

	mapping := map[string]int{}
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			found := false
			for ii, header := range normalized {
				if header == alias {
					mapping[field] = ii
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}
	return mapping
}

func detectBrokerage(headers []string) string {
	have := map[string]bool{}
	for _, h := range headers {
		have[normalizeHeader(h)] = true
	}

	for brokerage, expected := range brokerageSignatures {
		all := true
		for _, col := range expected {
			if !have[col] {
				all = false
				break
			}
		}
		if all {
			return brokerage
		}
	}
	return ""
}

// parseNumber reads a number in any common money format: currency
// symbols, thousands separators, and parentheses for negatives.
func parseNumber(value string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "", "\t", "").Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return 0, false
	}
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func parseDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, format := range dateFormats {
		if dt, err := time.Parse(format, value); err == nil {
			return dt.Format("2006-01-02")
		}
	}
	return ""
}

func assetType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(t, "etf"):
		return "ETF"
	case strings.Contains(t, "bond"), strings.Contains(t, "fixed"):
		return "Bond"
	case strings.Contains(t, "fund"), strings.Contains(t, "mutual"):
		return "Mutual Fund"
	default:
		return "Equity"
	}
}

func cell(row []string, idx int, ok bool) (string, bool) {
	if !ok || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

// Parse reads holdings from CSV content. The header row is required;
// rows without a usable symbol (cash sweeps, pending trades) are
// silently skipped, while rows with invalid quantities are reported
// as errors.
func Parse(content string) *Result {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return &Result{Errors: []string{fmt.Sprintf("could not read CSV: %s", err)}}
	}

	if len(rows) < 2 {
		return &Result{
			Errors:    []string{"CSV file must have a header row and at least one data row"},
			TotalRows: len(rows),
		}
	}

	headers := rows[0]
	dataRows := rows[1:]
	result := &Result{
		Holdings:  []Holding{},
		Errors:    []string{},
		Warnings:  []string{},
		TotalRows: len(dataRows),
	}

	if brokerage := detectBrokerage(headers); brokerage != "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s format", brokerage))
	}

	mapping := mapColumns(headers)
	symbolIdx, hasSymbol := mapping["symbol"]
	quantityIdx, hasQuantity := mapping["quantity"]
	costIdx, hasCost := mapping["cost_basis"]
	nameIdx, hasName := mapping["name"]
	dateIdx, hasDate := mapping["purchase_date"]
	typeIdx, hasType := mapping["asset_type"]

	if !hasSymbol {
		result.Errors = append(result.Errors, "could not find a Symbol column")
		return result
	}
	if !hasQuantity {
		result.Errors = append(result.Errors, "could not find a Quantity column")
		return result
	}
	if !hasCost {
		result.Warnings = append(result.Warnings, "no cost basis column found; defaulting to 0")
	}

	for ii, row := range dataRows {
		rowNum := ii + 2 // 1-based, after the header

		raw, ok := cell(row, symbolIdx, true)
		if !ok {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(raw))
		if skipSymbols[symbol] {
			continue
		}
		symbol = symbolCleaner.ReplaceAllString(symbol, "")
		if symbol == "" {
			continue
		}

		quantityRaw, _ := cell(row, quantityIdx, true)
		quantity, ok := parseNumber(quantityRaw)
		if !ok || quantity <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid quantity for %s", rowNum, symbol))
			continue
		}

		costBasis := 0.0
		if raw, ok := cell(row, costIdx, hasCost); ok {
			if num, ok := parseNumber(raw); ok {
				costBasis = num
			}
		}

		holding := Holding{
			Symbol:    symbol,
			Quantity:  quantity,
			CostBasis: costBasis,
			AssetType: "Equity",
		}

		if raw, ok := cell(row, nameIdx, hasName); ok {
			holding.Name = strings.TrimSpace(raw)
		}
		if holding.Name == "" {
			holding.Name = fmt.Sprintf("%s Inc.", symbol)
		}
		if raw, ok := cell(row, dateIdx, hasDate); ok {
			holding.PurchaseDate = parseDate(raw)
		}
		if raw, ok := cell(row, typeIdx, hasType); ok {
			holding.AssetType = assetType(raw)
		}

		result.Holdings = append(result.Holdings, holding)
	}

	result.SuccessfulRows = len(result.Holdings)
	result.Success = result.SuccessfulRows > 0

	return result
}

// ExportHoldings renders holdings back to CSV, including derived
// market value and gain columns.
func ExportHoldings(all []Holding, prices map[string]float64) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	_ = writer.Write([]string{
		"Symbol", "Name", "Quantity", "Cost Basis", "Current Price",
		"Market Value", "Gain/Loss", "Gain/Loss %", "Purchase Date", "Asset Type",
	})

	for _, h := range all {
		price, ok := prices[h.Symbol]
		if !ok {
			price = h.CostBasis
		}
		value := h.Quantity * price
		totalCost := h.Quantity * h.CostBasis
		gain := value - totalCost
		gainPct := 0.0
		if totalCost > 0 {
			gainPct = gain / totalCost * 100
		}

		_ = writer.Write([]string{
			h.Symbol,
			h.Name,
			strconv.FormatFloat(h.Quantity, 'f', -1, 64),
			fmt.Sprintf("%.2f", h.CostBasis),
			fmt.Sprintf("%.2f", price),
			fmt.Sprintf("%.2f", value),
			fmt.Sprintf("%.2f", gain),
			fmt.Sprintf("%.2f%%", gainPct),
			h.PurchaseDate,
			h.AssetType,
		})
	}

	writer.Flush()
	return sb.String()
}

// ImportTemplate returns the CSV template advertised to users.
func ImportTemplate() string {
	return `symbol,name,quantity,cost_basis,purchase_date,asset_type
AAPL,Apple Inc.,100,150.00,2023-01-15,Equity
MSFT,Microsoft Corporation,50,280.00,2023-02-20,Equity
VOO,Vanguard S&P 500 ETF,25,380.00,2023-03-10,ETF
`
}

// SampleImport returns a realistic sample CSV.
func SampleImport() string {
	return `symbol,name,quantity,cost_basis,purchase_date,asset_type
AAPL,Apple Inc.,100,145.50,2023-01-15,Equity
MSFT,Microsoft Corporation,75,310.25,2023-02-01,Equity
GOOGL,Alphabet Inc.,30,125.00,2023-03-10,Equity
AMZN,Amazon.com Inc.,50,98.75,2023-04-05,Equity
NVDA,NVIDIA Corporation,40,220.00,2023-05-15,Equity
JPM,JPMorgan Chase & Co.,100,140.50,2023-06-01,Equity
JNJ,Johnson & Johnson,60,162.25,2023-07-10,Equity
VOO,Vanguard S&P 500 ETF,50,380.00,2023-08-01,ETF
VYM,Vanguard High Dividend ETF,100,105.50,2023-09-15,ETF
SCHD,Schwab US Dividend ETF,75,72.00,2023-10-01,ETF
`
}
