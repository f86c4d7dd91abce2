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
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ha31457/Intelli-Shop-FE/checkout"
	"github.com/ha31457/Intelli-Shop-FE/session"
	"github.com/ha31457/Intelli-Shop-FE/validator"
)

// cartLineItems converts backend cart entries into totals-engine line
// items. Line totals are always recomputed from unit price and clamped
// quantity; the entry's own totalPrice field is ignored as potentially
// stale.
func cartLineItems(cart []CartEntry) []checkout.LineItem {
	items := make([]checkout.LineItem, len(cart))
	for i, e := range cart {
		items[i] = checkout.LineItem{
			ProductID: e.ProductID,
			Name:      e.ProductName,
			UnitPrice: e.Price,
			Quantity:  checkout.ClampQuantity(e.Quantity),
		}
	}
	return items
}

// cartSize is the total number of units across the cart, for the nav badge.
func cartSize(items []checkout.LineItem) int {
	n := 0
	for _, li := range items {
		n += li.Quantity
	}
	return n
}

func deliveryModeFromForm(v string) checkout.DeliveryMode {
	if strings.EqualFold(v, string(checkout.StorePickup)) {
		return checkout.StorePickup
	}
	return checkout.HomeDelivery
}

func (fe *frontendServer) customerDashboardHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	user, err := fe.getUser(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load profile")
		return
	}

	if err := templates.ExecuteTemplate(w, "customer_dashboard", injectCommonTemplateData(r, map[string]interface{}{
		"user": user,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) browseShopsHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	shops, err := fe.listShops(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve shops")
		return
	}

	query := r.URL.Query().Get("q")
	if query != "" {
		filtered := shops[:0]
		for _, s := range shops {
			if strings.Contains(strings.ToLower(s.Name), strings.ToLower(query)) {
				filtered = append(filtered, s)
			}
		}
		shops = filtered
	}

	if err := templates.ExecuteTemplate(w, "shops", injectCommonTemplateData(r, map[string]interface{}{
		"shops": shops,
		"query": query,
	})); err != nil {
		log.Error(err)
	}
}

// shopHandler renders one shop's product list. The shop header is fetched
// from the shop list rather than trusted from navigation state.
func (fe *frontendServer) shopHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	shopID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid shop id"), http.StatusBadRequest)
		return
	}

	shops, err := fe.listShops(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve shops")
		return
	}
	var shop *Shop
	for i := range shops {
		if shops[i].ID == shopID {
			shop = &shops[i]
			break
		}
	}
	if shop == nil {
		renderHTTPError(log, r, w, errors.Errorf("shop #%d not found", shopID), http.StatusNotFound)
		return
	}

	products, err := fe.listShopProducts(r.Context(), claim.Token, shopID)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve products")
		return
	}

	query := r.URL.Query().Get("q")
	if query != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	if err := templates.ExecuteTemplate(w, "shop", injectCommonTemplateData(r, map[string]interface{}{
		"shop":     shop,
		"products": products,
		"query":    query,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) productHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid product id"), http.StatusBadRequest)
		return
	}

	p, err := fe.getProduct(r.Context(), claim.Token, productID)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve product")
		return
	}

	if err := templates.ExecuteTemplate(w, "product", injectCommonTemplateData(r, map[string]interface{}{
		"product": p,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) viewCartHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())
	log.Debug("view user cart")

	cart, err := fe.getCart(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve cart")
		return
	}

	items := cartLineItems(cart)
	// The cart summary previews home-delivery shipping; checkout
	// recomputes with the mode the customer actually selects.
	totals := checkout.Summarize(items, checkout.HomeDelivery, fe.pricing)

	type cartItemView struct {
		Item      checkout.LineItem
		LineTotal string
	}
	views := make([]cartItemView, len(items))
	for i, li := range items {
		views[i] = cartItemView{Item: li, LineTotal: li.Total().StringFixed(2)}
	}

	if err := templates.ExecuteTemplate(w, "cart", injectCommonTemplateData(r, map[string]interface{}{
		"items":     views,
		"totals":    totals,
		"cart_size": cartSize(items),
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	productID, _ := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	payload := validator.AddToCartPayload{
		ProductID: productID,
		Quantity:  checkout.ClampQuantity(quantity),
	}
	if err := payload.Validate(); err != nil {
		renderHTTPError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}
	log.WithField("product", payload.ProductID).WithField("quantity", payload.Quantity).Debug("adding to cart")

	if err := fe.addToCart(r.Context(), claim.Token, payload.ProductID, payload.Quantity); err != nil {
		fe.handleBackendError(log, r, w, err, "failed to add to cart")
		return
	}
	w.Header().Set("Location", baseUrl+"/customer/cart")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	quantity, qErr := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || qErr != nil || productID <= 0 {
		renderHTTPError(log, r, w, errors.New("invalid product_id or quantity"), http.StatusBadRequest)
		return
	}
	quantity = checkout.ClampQuantity(quantity)
	log.WithField("product_id", productID).WithField("quantity", quantity).Debug("updating cart item quantity")

	if err := fe.setCartQuantity(r.Context(), claim.Token, productID, quantity); err != nil {
		fe.handleBackendError(log, r, w, err, "failed to update cart item")
		return
	}
	w.Header().Set("Location", baseUrl+"/customer/cart")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	productID, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		renderHTTPError(log, r, w, errors.New("invalid product_id"), http.StatusBadRequest)
		return
	}

	if err := fe.removeCartItem(r.Context(), claim.Token, productID); err != nil {
		fe.handleBackendError(log, r, w, err, "failed to remove cart item")
		return
	}
	w.Header().Set("Location", baseUrl+"/customer/cart")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) checkoutPageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	cart, err := fe.getCart(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve cart")
		return
	}
	if len(cart) == 0 {
		w.Header().Set("Location", baseUrl+"/customer/cart")
		w.WriteHeader(http.StatusFound)
		return
	}

	user, err := fe.getUser(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load profile")
		return
	}

	mode := deliveryModeFromForm(r.URL.Query().Get("mode"))
	items := cartLineItems(cart)
	totals := checkout.Summarize(items, mode, fe.pricing)

	if err := templates.ExecuteTemplate(w, "checkout", injectCommonTemplateData(r, map[string]interface{}{
		"items":          items,
		"totals":         totals,
		"delivery_mode":  string(mode),
		"address":        user.Address,
		"missingAddress": user.Address == "",
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())
	log.Debug("placing order")

	mode := deliveryModeFromForm(r.FormValue("delivery_mode"))

	// Always re-fetch the address; the profile is the single source of
	// truth for it.
	user, err := fe.getUser(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load profile")
		return
	}

	address := ""
	if mode == checkout.HomeDelivery {
		address = user.Address
	}
	payload := validator.PlaceOrderPayload{
		DeliveryMode:  string(mode),
		Address:       address,
		PaymentMethod: r.FormValue("payment_method"),
	}
	if err := payload.Validate(); err != nil {
		renderHTTPError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	if err := fe.placeOrder(r.Context(), claim.Token, &PlaceOrderRequest{
		DeliveryMode:  payload.DeliveryMode,
		Address:       payload.Address,
		PaymentMethod: payload.PaymentMethod,
	}); err != nil {
		fe.handleBackendError(log, r, w, err, "failed to place order")
		return
	}

	log.Info("order placed")
	w.Header().Set("Location", baseUrl+"/customer/orders")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) orderHistoryHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())
	log.Debug("view order history")

	history, err := fe.getOrderHistory(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve order history")
		return
	}

	if err := templates.ExecuteTemplate(w, "orders", injectCommonTemplateData(r, map[string]interface{}{
		"active_orders":    history.Active,
		"completed_orders": history.Completed,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) orderDetailsHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid order id"), http.StatusBadRequest)
		return
	}

	order, err := fe.getCustomerOrderDetails(r.Context(), claim.Token, orderID)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve order details")
		return
	}

	if err := templates.ExecuteTemplate(w, "order_details", injectCommonTemplateData(r, map[string]interface{}{
		"order": order,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) profilePageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	user, err := fe.getUser(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load profile")
		return
	}

	if err := templates.ExecuteTemplate(w, "profile", injectCommonTemplateData(r, map[string]interface{}{
		"user": user,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) profileUpdateHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	payload := validator.ProfilePayload{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
	}
	if err := payload.Validate(); err != nil {
		renderHTTPError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	// Re-fetch for the authoritative user id instead of trusting any
	// cached hint.
	user, err := fe.getUser(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load profile")
		return
	}

	if err := fe.updateUser(r.Context(), claim.Token, user.ID, &ProfileUpdateRequest{
		Name:    payload.Name,
		Phone:   payload.Phone,
		Address: payload.Address,
		Role:    user.Role,
		ShopID:  user.ShopID,
	}); err != nil {
		fe.handleBackendError(log, r, w, err, "failed to update profile")
		return
	}

	log.Info("profile updated")
	updated, err := fe.getUser(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not reload profile")
		return
	}
	if err := templates.ExecuteTemplate(w, "profile", injectCommonTemplateData(r, map[string]interface{}{
		"user":            updated,
		"success_message": "Profile updated successfully",
	})); err != nil {
		log.Error(err)
	}
}
