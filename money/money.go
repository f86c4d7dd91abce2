// Copyright 2025 The IntelliShop Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package money holds the currency display helpers shared by the page
// handlers and templates. All arithmetic stays in exact decimal form;
// rounding happens here, once, at render time.
package money

import (
	"github.com/shopspring/decimal"
)

// CurrencySymbol is the symbol shown next to every amount. The backend
// quotes all prices in a single currency, so no conversion takes place
// client-side.
const CurrencySymbol = "₹"

// displayPlaces is the fixed number of decimal places for currency display.
const displayPlaces = 2

// Round rounds an amount for display, half away from zero at two decimal
// places. Intermediate totals must never be passed through this; only the
// value about to be rendered.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(displayPlaces)
}

// Display renders an amount as a plain fixed-point string, e.g. "12.50".
func Display(d decimal.Decimal) string {
	return d.StringFixed(displayPlaces)
}

// Format renders an amount with the currency symbol, e.g. "₹312.49".
func Format(d decimal.Decimal) string {
	return CurrencySymbol + Display(d)
}

// Parse converts a decimal string coming from a form field or a backend
// payload into an exact amount.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
