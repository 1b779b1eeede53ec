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

// Package refdata holds the versioned reference tables the analyzers
// depend on: historical factor premiums, sector ESG baselines, and
// the S&P 500 ESG benchmark. The tables are data, not logic -- a
// default set ships embedded with the binary and an operator can
// point `refdata.path` at an override file which may be reloaded at
// runtime without a restart.
package refdata

import (
	_ "embed"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

//go:embed defaults.toml
var defaultsTOML []byte

// Pillars is a sector's baseline environmental / social / governance
// score triple.
type Pillars struct {
	Environmental float64 `toml:"environmental"`
	Social        float64 `toml:"social"`
	Governance    float64 `toml:"governance"`
}

type factorTable struct {
	Source   string             `toml:"source"`
	Premiums map[string]float64 `toml:"premiums"`
}

type esgTable struct {
	SP500Average    float64            `toml:"sp500_average"`
	BenchmarkSource string             `toml:"benchmark_source"`
	Sectors         map[string]Pillars `toml:"sectors"`
}

// Tables is one loaded reference-data set.
type Tables struct {
	Version string      `toml:"version"`
	Factors factorTable `toml:"factors"`
	ESG     esgTable    `toml:"esg"`
}

var (
	mu      sync.RWMutex
	current *Tables
)

func parse(raw []byte) (*Tables, error) {
	tables := &Tables{}
	if err := toml.Unmarshal(raw, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Load reads reference tables from the file configured as
// `refdata.path`, falling back to the embedded defaults when no path
// is configured or the file cannot be parsed. Safe to call again at
// any time; readers always see a complete table set.
func Load() {
	tables, err := parse(defaultsTOML)
	if err != nil {
		log.Panic().Err(err).Msg("embedded reference data is invalid")
	}

	path := viper.GetString("refdata.path")
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("Path", path).Msg("could not read reference data override; using embedded defaults")
		} else if override, err := parse(raw); err != nil {
			log.Warn().Err(err).Str("Path", path).Msg("could not parse reference data override; using embedded defaults")
		} else {
			tables = override
		}
	}

	mu.Lock()
	current = tables
	mu.Unlock()

	log.Info().Str("Version", tables.Version).Msg("loaded reference data")
}

func get() *Tables {
	mu.RLock()
	tables := current
	mu.RUnlock()

	if tables == nil {
		Load()
		mu.RLock()
		tables = current
		mu.RUnlock()
	}

	return tables
}

// Version returns the version string of the active table set.
func Version() string {
	return get().Version
}

// FactorPremiums returns the annualized premium for each style factor
// along with the provenance string for the estimates.
func FactorPremiums() (map[string]float64, string) {
	tables := get()
	premiums := make(map[string]float64, len(tables.Factors.Premiums))
	for name, premium := range tables.Factors.Premiums {
		premiums[name] = premium
	}
	return premiums, tables.Factors.Source
}

// SectorBaseline returns the deterministic ESG baseline for a sector,
// falling back to the Default bucket for unknown sectors.
func SectorBaseline(sector string) Pillars {
	tables := get()
	if pillars, ok := tables.ESG.Sectors[sector]; ok {
		return pillars
	}
	return tables.ESG.Sectors["Default"]
}

// Benchmark returns the S&P 500 ESG average and its source citation.
func Benchmark() (float64, string) {
	tables := get()
	return tables.ESG.SP500Average, tables.ESG.BenchmarkSource
}
