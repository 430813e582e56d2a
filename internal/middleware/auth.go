package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shortlist-dev/shortlister/internal/apperr"
	"github.com/shortlist-dev/shortlister/internal/jwt"
)

type key int

const ClaimsKey key = 0

type Auth struct {
	jwt jwt.Service
}

func NewAuth(jwtService jwt.Service) *Auth {
	return &Auth{jwt: jwtService}
}

// NeedAuth validates the bearer token and stores the decoded claims in
// the request context. Every JD/AI read and write is scoped to the
// subject embedded in those claims.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}
			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				http.Error(w, "Authorization header must be a bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := a.jwt.DecodeToken(tokenStr)
			if err != nil {
				var e *apperr.Error
				if errors.As(err, &e) {
					http.Error(w, e.Error(), e.StatusCode())
				} else {
					http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, &claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the claims stored by NeedAuth, or nil when
// the request skipped the middleware.
func GetClaimsFromContext(r *http.Request) *jwt.Claims {
	claims, ok := r.Context().Value(ClaimsKey).(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
