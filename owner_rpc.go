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
)

// Shop-management endpoints, all owner-scoped by the bearer token.

func (fe *frontendServer) getShopDetails(ctx context.Context, token string) (*Shop, error) {
	var s Shop
	if err := fe.callBackend(ctx, http.MethodGet, "/getShopDetails", token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (fe *frontendServer) getShopStats(ctx context.Context, token string) (*ShopStats, error) {
	var s ShopStats
	if err := fe.callBackend(ctx, http.MethodGet, "/api/getShopStats", token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (fe *frontendServer) getDashboardProducts(ctx context.Context, token string) ([]Product, error) {
	var products []Product
	if err := fe.callBackend(ctx, http.MethodGet, "/getDashboardProducts", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (fe *frontendServer) addProduct(ctx context.Context, token string, req *ProductRequest) error {
	return fe.callBackend(ctx, http.MethodPost, "/addProducts", token, req, nil)
}

func (fe *frontendServer) updateProduct(ctx context.Context, token string, shopID, productID int64, req *ProductRequest) error {
	return fe.callBackend(ctx, http.MethodPut, fmt.Sprintf("/%d/products/%d", shopID, productID), token, req, nil)
}

func (fe *frontendServer) deleteProduct(ctx context.Context, token string, shopID, productID int64) error {
	return fe.callBackend(ctx, http.MethodDelete, fmt.Sprintf("/%d/products/%d", shopID, productID), token, nil, nil)
}

func (fe *frontendServer) getShopOrders(ctx context.Context, token string) ([]ShopOrder, error) {
	var orders []ShopOrder
	if err := fe.callBackend(ctx, http.MethodGet, "/api/get-shop-orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (fe *frontendServer) getShopOrderDetails(ctx context.Context, token string, orderID int64) (*OrderDetails, error) {
	var d OrderDetails
	if err := fe.callBackend(ctx, http.MethodGet, fmt.Sprintf("/api/getOrderDetails/%d", orderID), token, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// updateOrderStatus requests a transition; the backend owns the lifecycle
// and the caller must re-render from the state it reports back.
func (fe *frontendServer) updateOrderStatus(ctx context.Context, token string, orderID int64, status string) (*OrderDetails, error) {
	in := struct {
		Status string `json:"status"`
	}{Status: status}
	var d OrderDetails
	if err := fe.callBackend(ctx, http.MethodPut, fmt.Sprintf("/api/getOrderDetails/%d", orderID), token, &in, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (fe *frontendServer) registerShop(ctx context.Context, token string, req *ShopRequest) (*Shop, error) {
	var s Shop
	if err := fe.callBackend(ctx, http.MethodPost, "/register/shop", token, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (fe *frontendServer) updateShopProfile(ctx context.Context, token string, req *ShopRequest) (*Shop, error) {
	var s Shop
	if err := fe.callBackend(ctx, http.MethodPut, "/owner/shop", token, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (fe *frontendServer) getNotifications(ctx context.Context, token string) ([]Notification, error) {
	var ns []Notification
	if err := fe.callBackend(ctx, http.MethodGet, "/owner/notifications", token, nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (fe *frontendServer) clearNotifications(ctx context.Context, token string) error {
	return fe.callBackend(ctx, http.MethodPost, "/owner/notifications/clear", token, nil, nil)
}
