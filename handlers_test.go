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

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha31457/Intelli-Shop-FE/checkout"
	"github.com/ha31457/Intelli-Shop-FE/session"
)

// pageRequest builds a request the way the middleware chain would hand it
// to a protected handler: logger and authorized claim on the context.
func pageRequest(method, path string, role session.Role) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	ctx := context.WithValue(r.Context(), ctxKeyLog{}, logrus.FieldLogger(logrus.New()))
	if role != "" {
		ctx = session.NewContext(ctx, &session.Claim{Role: role, Token: "tok", Name: "Tester"})
	}
	return r.WithContext(ctx)
}

func TestViewCartRendersTotals(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cart", r.URL.Path)
		fmt.Fprint(w, `{"success":true,"message":"ok","data":[
			{"productId":1,"productName":"Sourdough","quantity":1,"price":"249.99","totalPrice":"249.99"}
		]}`)
	})
	fe.pricing = checkout.DefaultPricing()

	w := httptest.NewRecorder()
	fe.viewCartHandler(w, pageRequest(http.MethodGet, "/customer/cart", session.RoleCustomer))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Sourdough")
	assert.Contains(t, body, "₹249.99", "subtotal")
	assert.Contains(t, body, "₹50.00", "flat shipping below the threshold")
	assert.Contains(t, body, "₹12.50", "5% tax, rounded for display")
	assert.Contains(t, body, "₹312.49", "grand total")
}

func TestViewCartExpiredSessionRedirectsToLogin(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	fe.pricing = checkout.DefaultPricing()

	w := httptest.NewRecorder()
	fe.viewCartHandler(w, pageRequest(http.MethodGet, "/customer/cart", session.RoleCustomer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "shop_token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "an expired token must be destroyed, not retried")
}

func TestViewCartBackendRejectionShowsMessage(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"success":false,"message":"cart service down"}`)
	})
	fe.pricing = checkout.DefaultPricing()

	w := httptest.NewRecorder()
	fe.viewCartHandler(w, pageRequest(http.MethodGet, "/customer/cart", session.RoleCustomer))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "cart service down", "no placeholder data, the real failure is shown")
}

func TestCheckoutRedirectsOnEmptyCart(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"message":"ok","data":[]}`)
	})
	fe.pricing = checkout.DefaultPricing()

	w := httptest.NewRecorder()
	fe.checkoutPageHandler(w, pageRequest(http.MethodGet, "/customer/checkout", session.RoleCustomer))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customer/cart", w.Header().Get("Location"))
}

func TestCheckoutPickupModeShipsFree(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cart":
			fmt.Fprint(w, `{"success":true,"message":"ok","data":[
				{"productId":1,"productName":"Sourdough","quantity":1,"price":"249.99","totalPrice":"249.99"}
			]}`)
		case "/getUser":
			fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":1,"name":"Asha","email":"a@b.com","address":"12 Main St"}}`)
		default:
			t.Fatalf("unexpected call %s", r.URL.Path)
		}
	})
	fe.pricing = checkout.DefaultPricing()

	w := httptest.NewRecorder()
	fe.checkoutPageHandler(w, pageRequest(http.MethodGet, "/customer/checkout?mode=Store+Pickup", session.RoleCustomer))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "₹0.00", "pickup must not charge shipping")
	assert.Contains(t, body, "₹262.49", "249.99 + 12.4995 tax, rounded once at display")
}

func TestPlaceOrderHomeDeliveryNeedsAddress(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getUser", r.URL.Path, "the order must not reach the backend")
		fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":1,"name":"Asha","email":"a@b.com","address":""}}`)
	})
	fe.pricing = checkout.DefaultPricing()

	r := pageRequest(http.MethodPost, "/customer/checkout", session.RoleCustomer)
	r.PostForm = map[string][]string{
		"delivery_mode":  {"Home Delivery"},
		"payment_method": {"COD"},
	}
	w := httptest.NewRecorder()
	fe.placeOrderHandler(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPlaceOrderStorePickup(t *testing.T) {
	var placed bool
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getUser":
			fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":1,"name":"Asha","email":"a@b.com","address":""}}`)
		case "/api/place-order":
			placed = true
			assert.Equal(t, http.MethodPost, r.Method)
			fmt.Fprint(w, `{"success":true,"message":"placed","data":{}}`)
		default:
			t.Fatalf("unexpected call %s", r.URL.Path)
		}
	})
	fe.pricing = checkout.DefaultPricing()

	r := pageRequest(http.MethodPost, "/customer/checkout", session.RoleCustomer)
	r.PostForm = map[string][]string{
		"delivery_mode":  {"Store Pickup"},
		"payment_method": {"UPI"},
	}
	w := httptest.NewRecorder()
	fe.placeOrderHandler(w, r)

	assert.True(t, placed)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/customer/orders", w.Header().Get("Location"))
}

func TestHomeRedirectsSignedInVisitors(t *testing.T) {
	fe := &frontendServer{}
	tests := []struct {
		role   session.Role
		target string
	}{
		{session.RoleCustomer, "/customer/dashboard"},
		{session.RoleOwner, "/owner/dashboard"},
	}
	for _, tc := range tests {
		r := pageRequest(http.MethodGet, "/", "")
		r.AddCookie(&http.Cookie{Name: "shop_token", Value: "tok"})
		r.AddCookie(&http.Cookie{Name: "shop_role", Value: string(tc.role)})
		w := httptest.NewRecorder()
		fe.homeHandler(w, r)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, tc.target, w.Header().Get("Location"))
	}
}

func TestOwnerDashboardPartialFailure(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/getShopDetails":
			fmt.Fprint(w, `{"success":true,"message":"ok","data":{"id":4,"ownerId":1,"name":"Asha Bakery","address":"12 Main St","shop_type":"Bakery","description":""}}`)
		case "/api/getShopStats":
			// One section down must not blank the page.
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"success":false,"message":"stats offline"}`)
		case "/getDashboardProducts":
			fmt.Fprint(w, `{"success":true,"message":"ok","data":[
				{"id":1,"shopid":4,"name":"Sourdough","description":"","price":"120.50","stock":2,"low_stock_threshold":5}
			]}`)
		case "/owner/notifications":
			fmt.Fprint(w, `{"success":true,"message":"ok","data":[]}`)
		default:
			t.Fatalf("unexpected call %s", r.URL.Path)
		}
	})
	fe.pricing = checkout.DefaultPricing()

	w := httptest.NewRecorder()
	fe.ownerDashboardHandler(w, pageRequest(http.MethodGet, "/owner/dashboard", session.RoleOwner))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Asha Bakery")
	assert.Contains(t, body, "statistics are temporarily unavailable")
	assert.Contains(t, body, "Sourdough", "the healthy sections still render")
	assert.True(t, strings.Contains(body, "low"), "2 in stock with threshold 5 is low")
}

func TestOwnerDashboardWithoutShopRedirectsToRegistration(t *testing.T) {
	fe := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/getShopDetails", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"no shop registered"}`)
	})

	w := httptest.NewRecorder()
	fe.ownerDashboardHandler(w, pageRequest(http.MethodGet, "/owner/dashboard", session.RoleOwner))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/owner/register-shop", w.Header().Get("Location"))
}
