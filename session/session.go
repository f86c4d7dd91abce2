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

// Package session models the signed-in visitor's claim and the route
// authorization decision applied before protected pages render.
//
// The guard here is a UX convenience, not a security boundary: it only
// decides whether to bother rendering a page. The backend enforces real
// authorization on every API request, independent of anything this package
// decides.
package session

import (
	"context"
)

// Role is the user type asserted by the session claim.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
)

// ParseRole validates a role string coming from storage or the backend.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleOwner:
		return Role(s), true
	}
	return "", false
}

// Claim is the locally stored assertion of who is signed in. The token is
// opaque to the client; invalidity is only discovered when a backend call
// rejects it.
type Claim struct {
	Role  Role
	Token string
	Name  string
}

// Redirect targets for the disallowed cases.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decision is the outcome of an authorization check: either the page may
// render, or the visitor is sent to Redirect.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Authorize gates a page tree on the current claim. A nil claim (nobody
// signed in) redirects to login; a claim whose role is outside the allowed
// set redirects to the unauthorized page. Purely local, no network.
func Authorize(c *Claim, allowed ...Role) Decision {
	if c == nil || c.Token == "" {
		return Decision{Redirect: LoginPath}
	}
	for _, r := range allowed {
		if c.Role == r {
			return Decision{Allowed: true}
		}
	}
	return Decision{Redirect: UnauthorizedPath}
}

type ctxKeyClaim struct{}

// NewContext attaches an authorized claim to the request context so
// handlers receive the session explicitly instead of re-reading storage.
func NewContext(ctx context.Context, c *Claim) context.Context {
	return context.WithValue(ctx, ctxKeyClaim{}, c)
}

// FromContext returns the claim attached by the guard, or nil on
// unprotected routes.
func FromContext(ctx context.Context) *Claim {
	c, _ := ctx.Value(ctxKeyClaim{}).(*Claim)
	return c
}
