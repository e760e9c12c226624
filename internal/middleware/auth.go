package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/logger"
	"app/internal/util"
)

// Injected key type to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// writeError mirrors the handlers' structured error shape so 401s from the
// middleware look like every other API error.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// AuthMiddleware validates the bearer session token and injects the user id
// into the request context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logger.New()
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Error().Msg("Authorization header missing")
				writeError(w, http.StatusUnauthorized, "authorization header missing")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Error().Msg("Invalid authorization header")
				writeError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}
			claims, err := util.ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				logger.Error().Err(err).Msg("Invalid session token")
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
