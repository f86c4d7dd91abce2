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
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeNoClaim(t *testing.T) {
	d := Authorize(nil, RoleCustomer)
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginPath, d.Redirect)
}

func TestAuthorizeEmptyToken(t *testing.T) {
	d := Authorize(&Claim{Role: RoleCustomer}, RoleCustomer)
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginPath, d.Redirect, "a claim without a token is no claim at all")
}

func TestAuthorizeWrongRole(t *testing.T) {
	d := Authorize(&Claim{Role: RoleCustomer, Token: "tok"}, RoleOwner)
	assert.False(t, d.Allowed)
	assert.Equal(t, UnauthorizedPath, d.Redirect)

	d = Authorize(&Claim{Role: RoleOwner, Token: "tok"}, RoleCustomer)
	assert.False(t, d.Allowed)
	assert.Equal(t, UnauthorizedPath, d.Redirect)
}

func TestAuthorizeAllowed(t *testing.T) {
	d := Authorize(&Claim{Role: RoleOwner, Token: "tok"}, RoleOwner)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Redirect)

	d = Authorize(&Claim{Role: RoleCustomer, Token: "tok"}, RoleCustomer, RoleOwner)
	assert.True(t, d.Allowed)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("CUSTOMER")
	assert.True(t, ok)
	assert.Equal(t, RoleCustomer, r)

	r, ok = ParseRole("OWNER")
	assert.True(t, ok)
	assert.Equal(t, RoleOwner, r)

	_, ok = ParseRole("ADMIN")
	assert.False(t, ok)
	_, ok = ParseRole("customer")
	assert.False(t, ok, "roles are case sensitive")
	_, ok = ParseRole("")
	assert.False(t, ok)
}

// replayCookies copies the Set-Cookie headers from a response onto a fresh
// request, the way a browser would on the next page load.
func replayCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	// Last write wins per name, and an expired cookie is a deletion.
	latest := map[string]*http.Cookie{}
	order := []string{}
	for _, c := range w.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, name := range order {
		if c := latest[name]; c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestCookieRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, Claim{Role: RoleOwner, Token: "tok-123", Name: "Asha's Bakery & Café"})

	got := FromRequest(replayCookies(t, w))
	require.NotNil(t, got)
	assert.Equal(t, RoleOwner, got.Role)
	assert.Equal(t, "tok-123", got.Token)
	assert.Equal(t, "Asha's Bakery & Café", got.Name, "name must survive escaping")
}

func TestClearDestroysClaim(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, Claim{Role: RoleCustomer, Token: "tok", Name: "x"})
	Clear(w)

	// After Clear every claim cookie is expired, so replay keeps none.
	assert.Nil(t, FromRequest(replayCookies(t, w)))
}

func TestFromRequestNoCookies(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, FromRequest(r))
}

func TestFromRequestBadRole(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: cookieToken, Value: "tok"})
	r.AddCookie(&http.Cookie{Name: cookieRole, Value: "ADMIN"})
	assert.Nil(t, FromRequest(r), "an unknown stored role must not produce a claim")
}

func TestTokenCookieIsHTTPOnly(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, Claim{Role: RoleCustomer, Token: "tok", Name: "x"})
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieToken {
			assert.True(t, c.HttpOnly, "token must not be script-readable")
			return
		}
	}
	t.Fatal("token cookie not written")
}

func TestContextRoundTrip(t *testing.T) {
	c := &Claim{Role: RoleCustomer, Token: "tok"}
	ctx := NewContext(context.Background(), c)
	assert.Same(t, c, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
