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

// types.go defines the model types exchanged with the backend. All of them
// are backend-owned; the client holds transient copies for display only.

import (
	"github.com/shopspring/decimal"
)

// User is the profile behind the current session.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
	ShopID  *int64 `json:"shopId,omitempty"`
}

// Shop is a storefront registered by an owner.
type Shop struct {
	ID          int64    `json:"id"`
	OwnerID     int64    `json:"ownerId"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	ShopType    string   `json:"shop_type"`
	Description string   `json:"description"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
}

// Product is a catalog entry within a shop.
type Product struct {
	ID                int64           `json:"id"`
	ShopID            int64           `json:"shopid"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// LowStock reports whether the product has fallen to its reorder level.
func (p Product) LowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// CartEntry is one line of the backend cart.
type CartEntry struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Order status values as the backend reports them.
const (
	statusPlaced         = "Placed"
	statusPending        = "Pending"
	statusShipped        = "Shipped"
	statusOutForDelivery = "OutForDelivery"
	statusDelivered      = "Delivered"
	statusCancelled      = "Cancelled"
)

// OrderItem is a line item inside an order summary.
type OrderItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order is a customer-facing order summary.
type Order struct {
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ShopName    string          `json:"shopName"`
	Items       []OrderItem     `json:"items"`
	Status      string          `json:"status"`
	Message     string          `json:"message"`
}

// OrderHistory splits the customer's orders the way the backend returns
// them.
type OrderHistory struct {
	Active    []Order `json:"activeOrders"`
	Completed []Order `json:"completedOrders"`
}

// OrderDetailItem is a resolved line item on the order detail pages.
type OrderDetailItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderDetails is the full record behind a single order, shared by the
// customer and owner detail pages.
type OrderDetails struct {
	ID              int64             `json:"id"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerAddress string            `json:"customerAddress,omitempty"`
	DeliveryMode    string            `json:"deliveryMode"`
	PaymentMethod   string            `json:"paymentMethod"`
	Status          string            `json:"status"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	PlacedAt        string            `json:"placedAt"`
	Items           []OrderDetailItem `json:"products"`
}

// ShopOrder is a row in the owner's order list.
type ShopOrder struct {
	ID       int64           `json:"id"`
	Customer string          `json:"customer"`
	Date     string          `json:"date"`
	Total    decimal.Decimal `json:"total"`
	Status   string          `json:"status"`
}

// ShopStats backs the owner dashboard cards.
type ShopStats struct {
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	PendingOrders int             `json:"pendingOrders"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// Notification is an owner-side event (new order, low stock, system).
type Notification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Type    string `json:"type,omitempty"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	DeliveryMode  string `json:"deliveryMode"`
	Address       string `json:"address,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
}

// ProfileUpdateRequest is the PUT /user/update payload.
type ProfileUpdateRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
	ShopID  *int64 `json:"shopId"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	ShopID            int64           `json:"shopid"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
}

// ShopRequest registers or updates a shop.
type ShopRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	ShopType    string `json:"shop_type"`
	Description string `json:"description"`
}

// AuthResult is what login and registration hand back on success.
type AuthResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}
