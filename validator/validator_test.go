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

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginPayload(t *testing.T) {
	ok := LoginPayload{Email: "a@b.com", Password: "secret1"}
	assert.NoError(t, ok.Validate())

	bad := LoginPayload{Email: "not-an-email", Password: "secret1"}
	assert.Error(t, bad.Validate())

	short := LoginPayload{Email: "a@b.com", Password: "abc"}
	assert.Error(t, short.Validate())
}

func TestSignupPayloadRole(t *testing.T) {
	p := SignupPayload{
		Name: "Asha", Email: "a@b.com", Phone: "9876543210",
		Password: "secret1", Role: "CUSTOMER",
	}
	assert.NoError(t, p.Validate())

	p.Role = "OWNER"
	assert.NoError(t, p.Validate())

	p.Role = "ADMIN"
	assert.Error(t, p.Validate(), "only the two storefront roles are valid")
}

func TestPlaceOrderPayloadAddressRequiredForDelivery(t *testing.T) {
	delivery := PlaceOrderPayload{
		DeliveryMode: "Home Delivery", PaymentMethod: "COD",
	}
	assert.Error(t, delivery.Validate(), "home delivery needs an address")

	delivery.Address = "12 Main St"
	assert.NoError(t, delivery.Validate())

	pickup := PlaceOrderPayload{
		DeliveryMode: "Store Pickup", PaymentMethod: "UPI",
	}
	assert.NoError(t, pickup.Validate(), "pickup needs no address")
}

func TestPlaceOrderPayloadRejectsUnknownMode(t *testing.T) {
	p := PlaceOrderPayload{DeliveryMode: "Drone", PaymentMethod: "COD"}
	assert.Error(t, p.Validate())

	p = PlaceOrderPayload{DeliveryMode: "Store Pickup", PaymentMethod: "Barter"}
	assert.Error(t, p.Validate())
}

func TestAddToCartPayload(t *testing.T) {
	assert.NoError(t, (&AddToCartPayload{ProductID: 1, Quantity: 1}).Validate())
	assert.Error(t, (&AddToCartPayload{ProductID: 1, Quantity: 0}).Validate())
	assert.Error(t, (&AddToCartPayload{ProductID: 1, Quantity: 101}).Validate())
	assert.Error(t, (&AddToCartPayload{ProductID: 0, Quantity: 1}).Validate())
}

func TestProductPayloadPrice(t *testing.T) {
	p := ProductPayload{Name: "Sourdough", Price: "120.50", Stock: 5}
	assert.NoError(t, p.Validate())

	p.Price = "-1"
	assert.Error(t, p.Validate(), "negative prices are invalid")

	p.Price = "abc"
	assert.Error(t, p.Validate(), "non-decimal prices are invalid")

	p.Price = "0"
	assert.NoError(t, p.Validate(), "free items are allowed")
}

func TestShopPayload(t *testing.T) {
	p := ShopPayload{Name: "Asha's Bakery", Address: "12 Main St", ShopType: "Bakery"}
	assert.NoError(t, p.Validate())

	p.Address = ""
	assert.Error(t, p.Validate())
}

func TestValidationErrorResponseFlattens(t *testing.T) {
	err := (&LoginPayload{}).Validate()
	flat := ValidationErrorResponse(err)
	assert.Contains(t, flat.Error(), "Email")
	assert.Contains(t, flat.Error(), "Password")
}
