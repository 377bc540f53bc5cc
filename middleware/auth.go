// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/models"
)

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying the session claims
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the session claims stored by RequireRole
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireRole admits requests with a valid bearer token for role.
// Missing or invalid tokens get 401, other roles get 403.
func RequireRole(issuer *auth.Issuer, role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if claims.Role != role {
			ErrorResponse(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

func RequireVoter(issuer *auth.Issuer, next http.HandlerFunc) http.HandlerFunc {
	return RequireRole(issuer, models.RoleVoter, next)
}

func RequireAdmin(issuer *auth.Issuer, next http.HandlerFunc) http.HandlerFunc {
	return RequireRole(issuer, models.RoleAdmin, next)
}
