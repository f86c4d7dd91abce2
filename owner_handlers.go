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
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ha31457/Intelli-Shop-FE/money"
	"github.com/ha31457/Intelli-Shop-FE/session"
	"github.com/ha31457/Intelli-Shop-FE/validator"
)

// writeShopHintCookies refreshes the display-only shop hints. Pages never
// rely on them for correctness.
func writeShopHintCookies(w http.ResponseWriter, shop *Shop) {
	http.SetCookie(w, &http.Cookie{
		Name:   cookieShopID,
		Value:  fmt.Sprint(shop.ID),
		MaxAge: cookieMaxAge,
		Path:   "/",
	})
	http.SetCookie(w, &http.Cookie{
		Name:   cookieShopName,
		Value:  url.QueryEscape(shop.Name),
		MaxAge: cookieMaxAge,
		Path:   "/",
	})
}

// ownerDashboardHandler fires its section fetches independently and renders
// whatever arrived; one failing card must not blank the others.
func (fe *frontendServer) ownerDashboardHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	shop, err := fe.getShopDetails(r.Context(), claim.Token)
	if err != nil {
		if isSessionExpired(err) {
			fe.handleBackendError(log, r, w, err, "could not load shop")
			return
		}
		// No shop yet: the owner registered but never finished onboarding.
		log.WithError(err).Debug("no shop details, redirecting to registration")
		w.Header().Set("Location", baseUrl+"/owner/register-shop")
		w.WriteHeader(http.StatusFound)
		return
	}
	writeShopHintCookies(w, shop)

	var (
		wg            sync.WaitGroup
		stats         *ShopStats
		products      []Product
		notifications []Notification
		statsErr      error
		productsErr   error
		notifErr      error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		stats, statsErr = fe.getShopStats(r.Context(), claim.Token)
	}()
	go func() {
		defer wg.Done()
		products, productsErr = fe.getDashboardProducts(r.Context(), claim.Token)
	}()
	go func() {
		defer wg.Done()
		notifications, notifErr = fe.getNotifications(r.Context(), claim.Token)
	}()
	wg.Wait()

	for section, err := range map[string]error{
		"stats": statsErr, "products": productsErr, "notifications": notifErr,
	} {
		if err != nil {
			if isSessionExpired(err) {
				fe.handleBackendError(log, r, w, err, "session expired")
				return
			}
			log.WithError(err).Warnf("dashboard section %q unavailable", section)
		}
	}

	lowStock := []Product{}
	for _, p := range products {
		if p.LowStock() {
			lowStock = append(lowStock, p)
		}
	}

	if err := templates.ExecuteTemplate(w, "owner_dashboard", injectCommonTemplateData(r, map[string]interface{}{
		"shop":                shop,
		"stats":               stats,
		"stats_failed":        statsErr != nil,
		"products":            products,
		"products_failed":     productsErr != nil,
		"low_stock":           lowStock,
		"notifications":       notifications,
		"notification_count":  len(notifications),
		"notification_failed": notifErr != nil,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) registerShopPageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	if err := templates.ExecuteTemplate(w, "register_shop", injectCommonTemplateData(r, map[string]interface{}{
		"name": "", "address": "", "shop_type": "", "description": "",
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) registerShopSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	payload := validator.ShopPayload{
		Name:        r.FormValue("name"),
		Address:     r.FormValue("address"),
		ShopType:    r.FormValue("shop_type"),
		Description: r.FormValue("description"),
	}
	renderError := func(msg string) {
		if err := templates.ExecuteTemplate(w, "register_shop", injectCommonTemplateData(r, map[string]interface{}{
			"error":       msg,
			"name":        payload.Name,
			"address":     payload.Address,
			"shop_type":   payload.ShopType,
			"description": payload.Description,
		})); err != nil {
			log.Error(err)
		}
	}
	if err := payload.Validate(); err != nil {
		renderError(validator.ValidationErrorResponse(err).Error())
		return
	}

	shop, err := fe.registerShop(r.Context(), claim.Token, &ShopRequest{
		Name:        payload.Name,
		Address:     payload.Address,
		ShopType:    payload.ShopType,
		Description: payload.Description,
	})
	if err != nil {
		if isSessionExpired(err) {
			fe.handleBackendError(log, r, w, err, "session expired")
			return
		}
		log.WithError(err).Warn("shop registration rejected")
		renderError(backendMessage(err, "could not register shop"))
		return
	}

	log.WithField("shop_id", shop.ID).Info("shop registered")
	writeShopHintCookies(w, shop)
	w.Header().Set("Location", baseUrl+"/owner/dashboard")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) ownerProductsHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	products, err := fe.getDashboardProducts(r.Context(), claim.Token)
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

	if err := templates.ExecuteTemplate(w, "owner_products", injectCommonTemplateData(r, map[string]interface{}{
		"products": products,
		"query":    query,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) addProductPageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	if err := templates.ExecuteTemplate(w, "product_form", injectCommonTemplateData(r, map[string]interface{}{
		"form_title":  "Add Product",
		"form_action": baseUrl + "/owner/products/add",
		"payload":     validator.ProductPayload{},
	})); err != nil {
		log.Error(err)
	}
}

// productPayloadFromForm pulls the shared product form fields; the price
// stays a string until validation has accepted it.
func productPayloadFromForm(r *http.Request) validator.ProductPayload {
	stock, _ := strconv.Atoi(r.FormValue("stock"))
	threshold, _ := strconv.Atoi(r.FormValue("low_stock_threshold"))
	return validator.ProductPayload{
		Name:              r.FormValue("name"),
		Description:       r.FormValue("description"),
		Price:             r.FormValue("price"),
		Stock:             stock,
		LowStockThreshold: threshold,
	}
}

func (fe *frontendServer) addProductSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	payload := productPayloadFromForm(r)
	renderError := func(msg string) {
		if err := templates.ExecuteTemplate(w, "product_form", injectCommonTemplateData(r, map[string]interface{}{
			"form_title":  "Add Product",
			"form_action": baseUrl + "/owner/products/add",
			"error":       msg,
			"payload":     payload,
		})); err != nil {
			log.Error(err)
		}
	}
	if err := payload.Validate(); err != nil {
		renderError(validator.ValidationErrorResponse(err).Error())
		return
	}

	shop, err := fe.getShopDetails(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load shop")
		return
	}
	price, _ := money.Parse(payload.Price)
	if err := fe.addProduct(r.Context(), claim.Token, &ProductRequest{
		ShopID:            shop.ID,
		Name:              payload.Name,
		Description:       payload.Description,
		Price:             price,
		Stock:             payload.Stock,
		LowStockThreshold: payload.LowStockThreshold,
	}); err != nil {
		if isSessionExpired(err) {
			fe.handleBackendError(log, r, w, err, "session expired")
			return
		}
		renderError(backendMessage(err, "could not add product"))
		return
	}

	log.WithField("product", payload.Name).Info("product added")
	w.Header().Set("Location", baseUrl+"/owner/products")
	w.WriteHeader(http.StatusFound)
}

// ownerProduct finds one of the owner's products by id; the list endpoint is
// already scoped to the authenticated shop.
func (fe *frontendServer) ownerProduct(r *http.Request, token string) (*Product, error) {
	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return nil, errors.New("invalid product id")
	}
	products, err := fe.getDashboardProducts(r.Context(), token)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, errors.Errorf("product #%d not found", productID)
}

func (fe *frontendServer) ownerProductHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	p, err := fe.ownerProduct(r, claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve product")
		return
	}

	if err := templates.ExecuteTemplate(w, "owner_product", injectCommonTemplateData(r, map[string]interface{}{
		"product": p,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) editProductPageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	p, err := fe.ownerProduct(r, claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve product")
		return
	}

	if err := templates.ExecuteTemplate(w, "product_form", injectCommonTemplateData(r, map[string]interface{}{
		"form_title":  "Edit Product",
		"form_action": fmt.Sprintf("%s/owner/products/%d/edit", baseUrl, p.ID),
		"payload": validator.ProductPayload{
			Name:              p.Name,
			Description:       p.Description,
			Price:             p.Price.StringFixed(2),
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
		},
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) editProductSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid product id"), http.StatusBadRequest)
		return
	}

	payload := productPayloadFromForm(r)
	renderError := func(msg string) {
		if err := templates.ExecuteTemplate(w, "product_form", injectCommonTemplateData(r, map[string]interface{}{
			"form_title":  "Edit Product",
			"form_action": fmt.Sprintf("%s/owner/products/%d/edit", baseUrl, productID),
			"error":       msg,
			"payload":     payload,
		})); err != nil {
			log.Error(err)
		}
	}
	if err := payload.Validate(); err != nil {
		renderError(validator.ValidationErrorResponse(err).Error())
		return
	}

	shop, err := fe.getShopDetails(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load shop")
		return
	}
	price, _ := money.Parse(payload.Price)
	if err := fe.updateProduct(r.Context(), claim.Token, shop.ID, productID, &ProductRequest{
		ShopID:            shop.ID,
		Name:              payload.Name,
		Description:       payload.Description,
		Price:             price,
		Stock:             payload.Stock,
		LowStockThreshold: payload.LowStockThreshold,
	}); err != nil {
		if isSessionExpired(err) {
			fe.handleBackendError(log, r, w, err, "session expired")
			return
		}
		renderError(backendMessage(err, "could not update product"))
		return
	}

	log.WithField("product_id", productID).Info("product updated")
	w.Header().Set("Location", baseUrl+"/owner/products")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	productID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid product id"), http.StatusBadRequest)
		return
	}

	shop, err := fe.getShopDetails(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load shop")
		return
	}
	if err := fe.deleteProduct(r.Context(), claim.Token, shop.ID, productID); err != nil {
		fe.handleBackendError(log, r, w, err, "could not delete product")
		return
	}

	log.WithField("product_id", productID).Info("product deleted")
	w.Header().Set("Location", baseUrl+"/owner/products")
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) ownerOrdersHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	orders, err := fe.getShopOrders(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve orders")
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	if err := templates.ExecuteTemplate(w, "owner_orders", injectCommonTemplateData(r, map[string]interface{}{
		"orders":        orders,
		"status_filter": status,
		"statuses": []string{
			statusPlaced, statusPending, statusShipped,
			statusOutForDelivery, statusDelivered, statusCancelled,
		},
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) ownerOrderDetailsHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid order id"), http.StatusBadRequest)
		return
	}

	order, err := fe.getShopOrderDetails(r.Context(), claim.Token, orderID)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve order details")
		return
	}

	fe.renderOwnerOrder(log, r, w, order, "")
}

func (fe *frontendServer) ownerOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		renderHTTPError(log, r, w, errors.New("invalid order id"), http.StatusBadRequest)
		return
	}
	status := r.FormValue("status")

	order, err := fe.updateOrderStatus(r.Context(), claim.Token, orderID, status)
	if err != nil {
		if isSessionExpired(err) {
			fe.handleBackendError(log, r, w, err, "session expired")
			return
		}
		// Rejected transition: re-fetch and show the order as it stands.
		log.WithError(err).WithField("status", status).Warn("status update rejected")
		current, fetchErr := fe.getShopOrderDetails(r.Context(), claim.Token, orderID)
		if fetchErr != nil {
			fe.handleBackendError(log, r, w, fetchErr, "could not retrieve order details")
			return
		}
		fe.renderOwnerOrder(log, r, w, current, backendMessage(err, "could not update status"))
		return
	}

	log.WithField("order_id", orderID).WithField("status", order.Status).Info("order status updated")
	fe.renderOwnerOrder(log, r, w, order, "")
}

func (fe *frontendServer) renderOwnerOrder(log logrus.FieldLogger, r *http.Request, w http.ResponseWriter, order *OrderDetails, errMsg string) {
	if err := templates.ExecuteTemplate(w, "owner_order_details", injectCommonTemplateData(r, map[string]interface{}{
		"order": order,
		"error": errMsg,
		"statuses": []string{
			statusPlaced, statusPending, statusShipped,
			statusOutForDelivery, statusDelivered, statusCancelled,
		},
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) shopProfilePageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	shop, err := fe.getShopDetails(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not load shop")
		return
	}
	writeShopHintCookies(w, shop)

	if err := templates.ExecuteTemplate(w, "shop_profile", injectCommonTemplateData(r, map[string]interface{}{
		"shop": shop,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) shopProfileUpdateHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	payload := validator.ShopPayload{
		Name:        r.FormValue("name"),
		Address:     r.FormValue("address"),
		ShopType:    r.FormValue("shop_type"),
		Description: r.FormValue("description"),
	}
	if err := payload.Validate(); err != nil {
		renderHTTPError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	shop, err := fe.updateShopProfile(r.Context(), claim.Token, &ShopRequest{
		Name:        payload.Name,
		Address:     payload.Address,
		ShopType:    payload.ShopType,
		Description: payload.Description,
	})
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not update shop")
		return
	}

	log.Info("shop profile updated")
	writeShopHintCookies(w, shop)
	if err := templates.ExecuteTemplate(w, "shop_profile", injectCommonTemplateData(r, map[string]interface{}{
		"shop":            shop,
		"success_message": "Shop updated successfully",
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	notifications, err := fe.getNotifications(r.Context(), claim.Token)
	if err != nil {
		fe.handleBackendError(log, r, w, err, "could not retrieve notifications")
		return
	}

	if err := templates.ExecuteTemplate(w, "notifications", injectCommonTemplateData(r, map[string]interface{}{
		"notifications": notifications,
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) clearNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	claim := session.FromContext(r.Context())

	if err := fe.clearNotifications(r.Context(), claim.Token); err != nil {
		fe.handleBackendError(log, r, w, err, "could not clear notifications")
		return
	}
	w.Header().Set("Location", baseUrl+"/owner/notifications")
	w.WriteHeader(http.StatusFound)
}
