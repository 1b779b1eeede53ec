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

// Package analytics is the portfolio risk-analytics engine: six pure,
// stateless transformations from a holdings snapshot to a result
// record. No function here performs I/O or holds state between
// calls, so concurrent invocations are safe without locking.
//
// All computations run at full precision; values are rounded to two
// decimal places only when the output record is assembled.
package analytics

import "math"

// TradingDays is the annualization basis for daily return series.
const TradingDays = 252

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
