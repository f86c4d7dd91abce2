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

package session

import (
	"net/http"
	"net/url"
)

// The claim lives in exactly one storage scope: these cookies. Earlier
// revisions of the storefront split it between tab-scoped and persistent
// storage, which made pages disagree about who was signed in.
const (
	cookiePrefix = "shop_"
	cookieToken  = cookiePrefix + "token"
	cookieRole   = cookiePrefix + "role"
	cookieName   = cookiePrefix + "name"

	// cookieMaxAge is 48 hours, matching the backend token lifetime.
	cookieMaxAge = 60 * 60 * 48
)

// FromRequest reads the claim from the request cookies. Returns nil when no
// token is stored or the stored role is unrecognized.
func FromRequest(r *http.Request) *Claim {
	tc, err := r.Cookie(cookieToken)
	if err != nil || tc.Value == "" {
		return nil
	}
	rc, err := r.Cookie(cookieRole)
	if err != nil {
		return nil
	}
	role, ok := ParseRole(rc.Value)
	if !ok {
		return nil
	}
	name := ""
	if nc, err := r.Cookie(cookieName); err == nil {
		name, _ = url.QueryUnescape(nc.Value)
	}
	return &Claim{Role: role, Token: tc.Value, Name: name}
}

// Write persists the claim after a successful login or signup.
func Write(w http.ResponseWriter, c Claim) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieToken,
		Value:    c.Token,
		MaxAge:   cookieMaxAge,
		Path:     "/",
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   cookieRole,
		Value:  string(c.Role),
		MaxAge: cookieMaxAge,
		Path:   "/",
	})
	http.SetCookie(w, &http.Cookie{
		Name:   cookieName,
		Value:  url.QueryEscape(c.Name),
		MaxAge: cookieMaxAge,
		Path:   "/",
	})
}

// Clear destroys the claim on logout or when the backend reports the token
// invalid.
func Clear(w http.ResponseWriter) {
	for _, name := range []string{cookieToken, cookieRole, cookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			MaxAge: -1,
			Path:   "/",
		})
	}
}
