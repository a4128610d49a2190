package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ctxKey is a private type so context values set here cannot collide with
// values set by other packages.
type ctxKey int

const userIDKey ctxKey = iota

// TokenVerifier checks a bearer token and returns the user id it was issued
// to. The auth service implements it; tests substitute a stub.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

// NewAuthenticator returns a middleware that requires a valid
// "Authorization: Bearer <token>" header on every request it guards.
// On success the user id is stored in the request context for
// UserIDFromContext; on failure the request is rejected with 401.
func NewAuthenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "missing bearer token")
				return
			}
			userID, err := verifier.VerifyToken(token)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the user id stored by NewAuthenticator, or
// uuid.Nil when the request did not pass through it.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey).(uuid.UUID)
	return id
}

// bearerToken extracts the token from the Authorization header.
// The "Bearer" scheme prefix is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"` + message + `"}}`))
}
