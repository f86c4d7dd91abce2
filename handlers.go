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
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ha31457/Intelli-Shop-FE/money"
	"github.com/ha31457/Intelli-Shop-FE/session"
	"github.com/ha31457/Intelli-Shop-FE/validator"
)

var (
	templates = template.Must(template.New("").
			Funcs(template.FuncMap{
			"money":        func(d decimal.Decimal) string { return money.Format(d) },
			"displayMoney": money.Display,
			"add":          func(a, b int) int { return a + b },
		}).ParseGlob("templates/*.html"))
)

func (fe *frontendServer) homeHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)

	// Signed-in visitors land on their dashboard.
	if claim := session.FromRequest(r); claim != nil {
		target := "/customer/dashboard"
		if claim.Role == session.RoleOwner {
			target = "/owner/dashboard"
		}
		w.Header().Set("Location", baseUrl+target)
		w.WriteHeader(http.StatusFound)
		return
	}

	if err := templates.ExecuteTemplate(w, "home", injectCommonTemplateData(r, nil)); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) unauthorizedHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	w.WriteHeader(http.StatusForbidden)
	if err := templates.ExecuteTemplate(w, "unauthorized", injectCommonTemplateData(r, nil)); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) contactPageHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	if err := templates.ExecuteTemplate(w, "contact", injectCommonTemplateData(r, map[string]interface{}{
		"name": "", "title": "", "email": "", "message": "",
	})); err != nil {
		log.Error(err)
	}
}

func (fe *frontendServer) contactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	payload := validator.ContactPayload{
		Name:    r.FormValue("name"),
		Title:   r.FormValue("title"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}
	if err := payload.Validate(); err != nil {
		renderHTTPError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	if err := fe.mailer.send(r.Context(), payload.Name, payload.Title, payload.Email, payload.Message); err != nil {
		log.WithField("error", err).Error("contact relay failed")
		if templateErr := templates.ExecuteTemplate(w, "contact", injectCommonTemplateData(r, map[string]interface{}{
			"contact_error": "Failed to send your message. Please try again later.",
			"name":          payload.Name,
			"title":         payload.Title,
			"email":         payload.Email,
			"message":       payload.Message,
		})); templateErr != nil {
			log.Error(templateErr)
		}
		return
	}

	log.WithField("from", payload.Email).Info("contact message relayed")
	if err := templates.ExecuteTemplate(w, "contact", injectCommonTemplateData(r, map[string]interface{}{
		"contact_sent": true,
		"name":         "", "title": "", "email": "", "message": "",
	})); err != nil {
		log.Error(err)
	}
}

func renderHTTPError(log logrus.FieldLogger, r *http.Request, w http.ResponseWriter, err error, code int) {
	log.WithField("error", err).Error("request error")
	errMsg := fmt.Sprintf("%+v", err)

	w.WriteHeader(code)

	if templateErr := templates.ExecuteTemplate(w, "error", injectCommonTemplateData(r, map[string]interface{}{
		"error":       errMsg,
		"status_code": code,
		"status":      http.StatusText(code),
	})); templateErr != nil {
		log.Error(templateErr)
	}
}

// handleBackendError is the one policy for failed backend calls: an
// invalid token destroys the claim and sends the visitor to login, an
// application rejection surfaces the backend's message, and everything
// else renders the error page. Never fall back to placeholder data.
func (fe *frontendServer) handleBackendError(log logrus.FieldLogger, r *http.Request, w http.ResponseWriter, err error, msg string) {
	if isSessionExpired(err) {
		log.WithField("error", err).Warn("session expired, redirecting to login")
		session.Clear(w)
		w.Header().Set("Location", baseUrl+session.LoginPath)
		w.WriteHeader(http.StatusFound)
		return
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		renderHTTPError(log, r, w, errors.Wrap(apiErr, msg), http.StatusBadGateway)
		return
	}
	renderHTTPError(log, r, w, errors.Wrap(err, msg), http.StatusInternalServerError)
}

// backendMessage extracts a visitor-safe message from a backend rejection,
// or returns the fallback when the error carries nothing presentable.
func backendMessage(err error, fallback string) string {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func injectCommonTemplateData(r *http.Request, payload map[string]interface{}) map[string]interface{} {
	claim := session.FromRequest(r)
	username := ""
	role := ""
	if claim != nil {
		username = claim.Name
		role = string(claim.Role)
	}
	shopName := ""
	if c, err := r.Cookie(cookieShopName); err == nil {
		if v, err := url.QueryUnescape(c.Value); err == nil {
			shopName = v
		}
	}

	data := map[string]interface{}{
		"session_id":  sessionID(r),
		"request_id":  r.Context().Value(ctxKeyRequestID{}),
		"baseUrl":     baseUrl,
		"currentYear": time.Now().Year(),
		"logged_in":   claim != nil,
		"username":    username,
		"role":        role,
		"shop_name":   shopName,
	}

	for k, v := range payload {
		data[k] = v
	}

	return data
}

func sessionID(r *http.Request) string {
	v := r.Context().Value(ctxKeySessionID{})
	if v != nil {
		return v.(string)
	}
	return ""
}
