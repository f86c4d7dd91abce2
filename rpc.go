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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Every backend response arrives in the envelope {success, message, data}.
// It is decoded and validated here, at the boundary, so handlers only ever
// see typed data or a typed error.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// apiError is a well-formed backend response with success=false. Its
// message is safe to show to the visitor.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected by backend (status %d)", e.Status)
}

// errSessionExpired marks 401/403 responses. Callers clear the claim and
// send the visitor back to login.
var errSessionExpired = errors.New("session expired")

func isSessionExpired(err error) bool {
	return errors.Is(err, errSessionExpired)
}

// callBackend performs one REST call against the backend origin. No
// retries; the request is cancelled with ctx. When out is non-nil the
// envelope's data field is decoded into it.
func (fe *frontendServer) callBackend(ctx context.Context, method, path, token string, in, out interface{}) error {
	u := fmt.Sprintf("http://%s%s", fe.backendAddr, path)

	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encode %s %s request", method, path)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrapf(err, "build %s %s request", method, path)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fe.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "backend %s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.Wrapf(errSessionExpired, "backend %s %s: status %d", method, path, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrapf(err, "backend %s %s: malformed response (status %d)", method, path, resp.StatusCode)
	}
	if !env.Success {
		return &apiError{Status: resp.StatusCode, Message: env.Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("backend %s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil {
		if len(env.Data) == 0 {
			return errors.Errorf("backend %s %s: response missing data", method, path)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "backend %s %s: decode data", method, path)
		}
	}
	return nil
}

func (fe *frontendServer) getUser(ctx context.Context, token string) (*User, error) {
	var u User
	if err := fe.callBackend(ctx, http.MethodGet, "/getUser", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (fe *frontendServer) updateUser(ctx context.Context, token string, id int64, req *ProfileUpdateRequest) error {
	return fe.callBackend(ctx, http.MethodPut, fmt.Sprintf("/user/update/%d", id), token, req, nil)
}

func (fe *frontendServer) listShops(ctx context.Context, token string) ([]Shop, error) {
	var shops []Shop
	if err := fe.callBackend(ctx, http.MethodGet, "/shops", token, nil, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (fe *frontendServer) listShopProducts(ctx context.Context, token string, shopID int64) ([]Product, error) {
	var products []Product
	if err := fe.callBackend(ctx, http.MethodGet, fmt.Sprintf("/%d/products", shopID), token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (fe *frontendServer) getProduct(ctx context.Context, token string, id int64) (*Product, error) {
	var p Product
	if err := fe.callBackend(ctx, http.MethodGet, fmt.Sprintf("/api/product/%d", id), token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (fe *frontendServer) getCart(ctx context.Context, token string) ([]CartEntry, error) {
	var cart []CartEntry
	if err := fe.callBackend(ctx, http.MethodGet, "/cart", token, nil, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (fe *frontendServer) addToCart(ctx context.Context, token string, productID int64, quantity int) error {
	in := struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}
	return fe.callBackend(ctx, http.MethodPost, "/cart/add", token, &in, nil)
}

func (fe *frontendServer) removeCartItem(ctx context.Context, token string, productID int64) error {
	return fe.callBackend(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", productID), token, nil, nil)
}

// setCartQuantity replaces an item's quantity. The cart API only exposes
// add and remove, so a change is a remove followed by a fresh add with the
// clamped quantity; the page then re-renders from the authoritative cart.
func (fe *frontendServer) setCartQuantity(ctx context.Context, token string, productID int64, quantity int) error {
	if err := fe.removeCartItem(ctx, token, productID); err != nil {
		return err
	}
	return fe.addToCart(ctx, token, productID, quantity)
}

func (fe *frontendServer) placeOrder(ctx context.Context, token string, req *PlaceOrderRequest) error {
	return fe.callBackend(ctx, http.MethodPost, "/api/place-order", token, req, nil)
}

func (fe *frontendServer) getOrderHistory(ctx context.Context, token string) (*OrderHistory, error) {
	var h OrderHistory
	if err := fe.callBackend(ctx, http.MethodGet, "/api/get-orders", token, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (fe *frontendServer) getCustomerOrderDetails(ctx context.Context, token string, orderID int64) (*OrderDetails, error) {
	var d OrderDetails
	if err := fe.callBackend(ctx, http.MethodGet, fmt.Sprintf("/api/getOrderDetailsCustomer/%d", orderID), token, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
