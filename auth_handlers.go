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

	"github.com/sirupsen/logrus"

	"github.com/ha31457/Intelli-Shop-FE/session"
	"github.com/ha31457/Intelli-Shop-FE/validator"
)

// loginPageHandler renders the login page (GET /login).
func (fe *frontendServer) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	registered := r.URL.Query().Get("registered")
	data := map[string]interface{}{"email": ""}
	if registered == "true" {
		data["success_message"] = "Registration successful! Please log in."
	}
	if err := templates.ExecuteTemplate(w, "login", injectCommonTemplateData(r, data)); err != nil {
		log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
		log.Error(err)
	}
}

// loginSubmitHandler handles the login form submission (POST /login).
func (fe *frontendServer) loginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	payload := validator.LoginPayload{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := payload.Validate(); err != nil {
		fe.renderLoginError(log, w, r, validator.ValidationErrorResponse(err).Error(), payload.Email)
		return
	}

	result, err := fe.authLogin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.WithField("error", err).Warn("login failed")
		fe.renderLoginError(log, w, r, err.Error(), payload.Email)
		return
	}
	role, ok := session.ParseRole(result.Role)
	if !ok {
		log.WithField("role", result.Role).Error("backend returned unknown role")
		fe.renderLoginError(log, w, r, "Login failed. Please try again.", payload.Email)
		return
	}

	session.Write(w, session.Claim{Role: role, Token: result.Token, Name: result.Name})
	log.WithField("role", role).Info("user logged in")

	target := "/customer/dashboard"
	if role == session.RoleOwner {
		target = "/owner/dashboard"
	}
	w.Header().Set("Location", baseUrl+target)
	w.WriteHeader(http.StatusFound)
}

func (fe *frontendServer) renderLoginError(log logrus.FieldLogger, w http.ResponseWriter, r *http.Request, msg, email string) {
	if templateErr := templates.ExecuteTemplate(w, "login", injectCommonTemplateData(r, map[string]interface{}{
		"login_error": msg,
		"email":       email,
	})); templateErr != nil {
		log.Error(templateErr)
	}
}

// signupPageHandler renders the registration page (GET /signup).
func (fe *frontendServer) signupPageHandler(w http.ResponseWriter, r *http.Request) {
	if err := templates.ExecuteTemplate(w, "signup", injectCommonTemplateData(r, map[string]interface{}{
		"name":        "",
		"email":       "",
		"phone":       "",
		"address":     "",
		"signup_role": "CUSTOMER",
	})); err != nil {
		log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
		log.Error(err)
	}
}

// signupSubmitHandler handles the registration form submission
// (POST /signup). A successful signup signs the visitor in immediately;
// owners continue to shop registration, customers to their dashboard.
func (fe *frontendServer) signupSubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)

	payload := validator.SignupPayload{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Address:  r.FormValue("address"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}
	renderError := func(msg string) {
		if templateErr := templates.ExecuteTemplate(w, "signup", injectCommonTemplateData(r, map[string]interface{}{
			"signup_error": msg,
			"name":         payload.Name,
			"email":        payload.Email,
			"phone":        payload.Phone,
			"address":      payload.Address,
			"signup_role":  payload.Role,
		})); templateErr != nil {
			log.Error(templateErr)
		}
	}
	if err := payload.Validate(); err != nil {
		renderError(validator.ValidationErrorResponse(err).Error())
		return
	}

	result, err := fe.authRegister(r.Context(), &registerRequest{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		log.WithField("error", err).Warn("registration failed")
		renderError(err.Error())
		return
	}
	role, ok := session.ParseRole(result.Role)
	if !ok {
		log.WithField("role", result.Role).Error("backend returned unknown role")
		renderError("Registration failed. Please try again.")
		return
	}

	name := result.Name
	if name == "" {
		name = payload.Name
	}
	session.Write(w, session.Claim{Role: role, Token: result.Token, Name: name})
	log.WithField("role", role).Info("user registered")

	target := "/customer/dashboard"
	if role == session.RoleOwner {
		target = "/owner/register-shop"
	}
	w.Header().Set("Location", baseUrl+target)
	w.WriteHeader(http.StatusFound)
}

// logoutHandler destroys the claim and every other storefront cookie
// (GET /logout).
func (fe *frontendServer) logoutHandler(w http.ResponseWriter, r *http.Request) {
	log := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger)
	log.Debug("logging out")
	session.Clear(w)
	for _, name := range []string{cookieShopID, cookieShopName} {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", MaxAge: -1, Path: "/"})
	}
	w.Header().Set("Location", baseUrl+"/")
	w.WriteHeader(http.StatusFound)
}
