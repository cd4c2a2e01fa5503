package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tracklite/tracklite-go/internal/crypto"
	"github.com/tracklite/tracklite-go/internal/model"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// IdentityProvider resolves the authenticated user behind a validated token.
// It replaces any notion of a process-wide "current user": the user is loaded
// per request and travels in the request context only.
type IdentityProvider interface {
	LoadUser(ctx context.Context, userID int64) (*model.User, error)
	TouchLastSeen(ctx context.Context, userID int64) error
}

// Authenticate returns middleware that validates a Bearer token, loads the
// user through the identity provider and stores it in the request context.
// It also updates the user's last_seen on every authenticated request,
// regardless of which endpoint the request hits.
func Authenticate(secret string, identity IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := identity.LoadUser(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unknown user")
				return
			}

			if err := identity.TouchLastSeen(r.Context(), user.ID); err != nil {
				// Not worth failing the request over.
				slog.Warn("updating last_seen failed", "user_id", user.ID, "error", err)
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
