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

// Package checkout computes cart and order totals. Every aggregate is
// derived from the current line items on each call; callers must not cache
// a Totals value across a cart mutation.
package checkout

import (
	"github.com/shopspring/decimal"
)

// DeliveryMode selects how an order reaches the customer.
type DeliveryMode string

const (
	HomeDelivery DeliveryMode = "Home Delivery"
	StorePickup  DeliveryMode = "Store Pickup"
)

// MinQuantity is the floor for any line item quantity.
const MinQuantity = 1

// LineItem is one product entry in a cart or order.
type LineItem struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns the line total, unit price times the clamped quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(ClampQuantity(li.Quantity))))
}

// ClampQuantity enforces the quantity floor. Decrementing below one keeps
// the item in the cart at quantity one; removal is a separate action.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}

// Pricing carries the shipping and tax parameters used by Summarize.
type Pricing struct {
	// FreeShippingThreshold is the subtotal at or above which home
	// delivery ships free.
	FreeShippingThreshold decimal.Decimal
	// FlatShippingFee applies to home delivery below the threshold.
	FlatShippingFee decimal.Decimal
	// TaxRate is a fraction, e.g. 0.05 for 5%.
	TaxRate decimal.Decimal
}

// DefaultPricing returns the storefront defaults: free shipping from 1000,
// a flat fee of 50 below that, and 5% tax.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.NewFromInt(1000),
		FlatShippingFee:       decimal.NewFromInt(50),
		TaxRate:               decimal.NewFromFloat(0.05),
	}
}

// Totals is the display-ready monetary breakdown of a cart or order.
// Values are exact; rounding is left to the money package at render time.
type Totals struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Summarize derives all monetary aggregates from the line items.
//
// Shipping is zero for store pickup, and zero for home delivery once the
// subtotal reaches the free-shipping threshold; below the threshold the
// flat fee applies. The grand total is always subtotal + shipping + tax.
func Summarize(items []LineItem, mode DeliveryMode, p Pricing) Totals {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Total())
	}

	shipping := decimal.Zero
	if mode == HomeDelivery && len(items) > 0 && subtotal.LessThan(p.FreeShippingThreshold) {
		shipping = p.FlatShippingFee
	}

	tax := subtotal.Mul(p.TaxRate)

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax),
	}
}
