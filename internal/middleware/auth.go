package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/util"

	"github.com/rs/zerolog"
)

// Typed key to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// UserID extracts the authenticated user ID from the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserContextKey).(string)
	return id, ok && id != ""
}

// AuthMiddleware rejects requests without a valid bearer token and embeds
// the token subject (user ID) into the request context. Nothing downstream
// runs for an unauthenticated request.
func AuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Error().Msg("Authorization header missing")
				writeError(w, http.StatusUnauthorized, "Authorization header missing")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Error().Msg("Invalid authorization header")
				writeError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}
			claims, err := util.ValidateJWT(parts[1], jwtSecret)
			if err != nil {
				logger.Error().Err(err).Msg("Invalid token")
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
