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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha31457/Intelli-Shop-FE/session"
)

func claimRequest(path string, role session.Role, token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: "shop_token", Value: token})
		r.AddCookie(&http.Cookie{Name: "shop_role", Value: string(role)})
		r.AddCookie(&http.Cookie{Name: "shop_name", Value: "Tester"})
	}
	return r
}

func TestRequireRoleRedirectsAnonymousToLogin(t *testing.T) {
	fe := &frontendServer{}
	protected := fe.requireRole(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run")
	}, session.RoleCustomer)

	w := httptest.NewRecorder()
	protected(w, claimRequest("/customer/cart", "", ""))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, w.Body.String(), "nothing of the protected page may leak")
}

func TestRequireRoleRedirectsWrongRoleToUnauthorized(t *testing.T) {
	fe := &frontendServer{}
	protected := fe.requireRole(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler must not run")
	}, session.RoleOwner)

	w := httptest.NewRecorder()
	protected(w, claimRequest("/owner/dashboard", session.RoleCustomer, "tok"))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/unauthorized", w.Header().Get("Location"))
	assert.Empty(t, w.Body.String())
}

func TestRequireRoleRunsHandlerWithClaimInContext(t *testing.T) {
	fe := &frontendServer{}
	ran := false
	protected := fe.requireRole(func(w http.ResponseWriter, r *http.Request) {
		ran = true
		claim := session.FromContext(r.Context())
		require.NotNil(t, claim, "the guard must hand the claim to the handler")
		assert.Equal(t, session.RoleOwner, claim.Role)
		assert.Equal(t, "tok-5", claim.Token)
		w.WriteHeader(http.StatusOK)
	}, session.RoleOwner)

	w := httptest.NewRecorder()
	protected(w, claimRequest("/owner/dashboard", session.RoleOwner, "tok-5"))

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleMultipleRoles(t *testing.T) {
	fe := &frontendServer{}
	protected := fe.requireRole(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, session.RoleCustomer, session.RoleOwner)

	for _, role := range []session.Role{session.RoleCustomer, session.RoleOwner} {
		w := httptest.NewRecorder()
		protected(w, claimRequest("/", role, "tok"))
		assert.Equal(t, http.StatusOK, w.Code, "role %s", role)
	}
}

func TestEnsureSessionIDIssuesCookieOnce(t *testing.T) {
	var got string
	h := ensureSessionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = r.Context().Value(ctxKeySessionID{}).(string)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, got)

	issued := w.Result().Cookies()
	require.Len(t, issued, 1)
	assert.Equal(t, cookieSessionID, issued[0].Name)
	assert.Equal(t, got, issued[0].Value)

	// A returning visitor keeps the same ID and gets no new cookie.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(issued[0])
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r)
	assert.Equal(t, issued[0].Value, got)
	assert.Empty(t, w2.Result().Cookies())
}
