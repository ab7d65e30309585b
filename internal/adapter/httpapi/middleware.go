package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/animalmarket/listing-service/internal/platform/logger"
)

// ContextKey is a private type for request context keys.
type ContextKey string

// UserIDCtxKey carries the authenticated user id set by JWTAuth.
const UserIDCtxKey = ContextKey("user_id")

// TokenVerifier checks a bearer token and returns the user id it belongs to.
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the token's
// user id in the request context.
func JWTAuth(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.Fields(header)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeError(w, http.StatusUnauthorized, "authorization token is not provided")
				return
			}

			userID, err := verifier.VerifyToken(parts[1])
			if err != nil {
				log.Warn("token verification failed", "path", r.URL.Path, "error", err.Error())
				writeError(w, http.StatusUnauthorized, "token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs method, path, and status for every request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Info("http request", "method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
}
