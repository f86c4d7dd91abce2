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
	"net/http"
)

// Authentication endpoints. These are the only calls made without a bearer
// token; the token they return is opaque to the client and carried on every
// subsequent request.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// authLogin exchanges credentials for {token, role}.
func (fe *frontendServer) authLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	in := loginRequest{Email: email, Password: password}
	if err := fe.callBackend(ctx, http.MethodPost, "/login", "", &in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// authRegister creates an account and signs the visitor in.
func (fe *frontendServer) authRegister(ctx context.Context, req *registerRequest) (*AuthResult, error) {
	var res AuthResult
	if err := fe.callBackend(ctx, http.MethodPost, "/user/register", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
