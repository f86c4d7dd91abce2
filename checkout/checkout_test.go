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

package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func item(price string, qty int) LineItem {
	return LineItem{ProductID: 1, Name: "item", UnitPrice: dec(price), Quantity: qty}
}

func TestSummarizeEmptyCart(t *testing.T) {
	got := Summarize(nil, HomeDelivery, DefaultPricing())
	assert.True(t, got.Subtotal.IsZero(), "subtotal")
	assert.True(t, got.Shipping.IsZero(), "shipping must be zero for an empty cart")
	assert.True(t, got.Tax.IsZero(), "tax")
	assert.True(t, got.GrandTotal.IsZero(), "grand total")
}

func TestSummarizeSingleItem(t *testing.T) {
	// 249.99 + 50 shipping + 5% tax (12.4995) = 312.4895, shown as 312.49.
	got := Summarize([]LineItem{item("249.99", 1)}, HomeDelivery, DefaultPricing())

	assert.True(t, got.Subtotal.Equal(dec("249.99")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.Shipping.Equal(dec("50")), "shipping: %s", got.Shipping)
	assert.True(t, got.Tax.Equal(dec("12.4995")), "tax must stay exact: %s", got.Tax)
	assert.True(t, got.GrandTotal.Equal(dec("312.4895")), "grand total must stay exact: %s", got.GrandTotal)
	assert.Equal(t, "312.49", got.GrandTotal.StringFixed(2))
}

func TestSummarizeFreeShippingBoundary(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		shipping string
	}{
		{"just below threshold", "999.99", "50"},
		{"exactly at threshold", "1000.00", "0"},
		{"above threshold", "1250.00", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize([]LineItem{item(tc.subtotal, 1)}, HomeDelivery, DefaultPricing())
			assert.True(t, got.Shipping.Equal(dec(tc.shipping)),
				"subtotal %s: shipping %s, want %s", tc.subtotal, got.Shipping, tc.shipping)
		})
	}
}

func TestSummarizeStorePickupNeverShips(t *testing.T) {
	for _, subtotal := range []string{"10.00", "999.99", "1000.00", "5000.00"} {
		got := Summarize([]LineItem{item(subtotal, 1)}, StorePickup, DefaultPricing())
		assert.True(t, got.Shipping.IsZero(), "subtotal %s: pickup must not ship", subtotal)
	}
}

func TestSummarizeMultipleItems(t *testing.T) {
	items := []LineItem{
		item("100.00", 3), // 300.00
		item("49.50", 2),  // 99.00
	}
	got := Summarize(items, HomeDelivery, DefaultPricing())

	require.True(t, got.Subtotal.Equal(dec("399.00")), "subtotal: %s", got.Subtotal)
	assert.True(t, got.Shipping.Equal(dec("50")))
	assert.True(t, got.Tax.Equal(dec("19.95")))
	assert.True(t, got.GrandTotal.Equal(dec("468.95")))
}

func TestSummarizeGrandTotalIsAlwaysTheSum(t *testing.T) {
	items := []LineItem{item("123.45", 2)}
	for _, mode := range []DeliveryMode{HomeDelivery, StorePickup} {
		got := Summarize(items, mode, DefaultPricing())
		want := got.Subtotal.Add(got.Shipping).Add(got.Tax)
		assert.True(t, got.GrandTotal.Equal(want), "mode %s", mode)
	}
}

func TestSummarizeCustomPricing(t *testing.T) {
	p := Pricing{
		FreeShippingThreshold: dec("500"),
		FlatShippingFee:       dec("25"),
		TaxRate:               dec("0.18"),
	}
	got := Summarize([]LineItem{item("200.00", 1)}, HomeDelivery, p)
	assert.True(t, got.Shipping.Equal(dec("25")))
	assert.True(t, got.Tax.Equal(dec("36")))
	assert.True(t, got.GrandTotal.Equal(dec("261")))
}

func TestSummarizeQuantityMonotonicity(t *testing.T) {
	// Bumping any quantity by one never shrinks subtotal or grand total,
	// even when the bump crosses the free-shipping threshold.
	for _, qty := range []int{1, 2, 3, 4, 5} {
		before := Summarize([]LineItem{item("249.99", qty)}, HomeDelivery, DefaultPricing())
		after := Summarize([]LineItem{item("249.99", qty+1)}, HomeDelivery, DefaultPricing())
		assert.True(t, after.Subtotal.GreaterThan(before.Subtotal), "qty %d", qty)
		assert.True(t, after.GrandTotal.GreaterThanOrEqual(before.GrandTotal), "qty %d", qty)
	}
}

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 1, ClampQuantity(-5))
	assert.Equal(t, 1, ClampQuantity(1))
	assert.Equal(t, 7, ClampQuantity(7))
}

func TestLineItemTotalClampsQuantity(t *testing.T) {
	li := item("10.00", 0)
	assert.True(t, li.Total().Equal(dec("10.00")), "zero quantity must price as one")
}

func TestSummarizeNoFloatDrift(t *testing.T) {
	// 0.1 * 3 is the classic binary float trap; decimals must not drift.
	got := Summarize([]LineItem{item("0.10", 3)}, StorePickup, DefaultPricing())
	assert.True(t, got.Subtotal.Equal(dec("0.30")), "subtotal: %s", got.Subtotal)
}
