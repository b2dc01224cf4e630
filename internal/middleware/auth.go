package middleware

import (
	"context"
	"net/http"
	"strings"

	"techstore/internal/model"
	"techstore/internal/repository"

	"github.com/rs/zerolog"
)

type contextKey string

const userKey contextKey = "user"

// UserFromContext returns the authenticated user, or nil outside an
// authenticated route.
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey).(*model.User)
	return user
}

// ContextWithUser attaches an authenticated user to a context.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Auth resolves a bearer token to a user and injects it into the request
// context. Token issuance lives in the external auth service; this layer
// only trusts the token-to-user mapping in the store.
func Auth(users repository.UserRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing bearer token")
				unauthorised(w, "Authentication required")
				return
			}

			user, err := users.GetByToken(r.Context(), token)
			if err != nil {
				logger.Error().Err(err).Msg("failed to resolve auth token")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "INTERNAL_ERROR", "message": "authentication failed"}`))
				return
			}
			if user == nil {
				logger.Warn().Str("path", r.URL.Path).Msg("unknown auth token")
				unauthorised(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// AdminOnly rejects authenticated users without the admin flag. It must run
// after Auth.
func AdminOnly(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil || !user.IsAdmin {
				logger.Warn().Str("path", r.URL.Path).Msg("admin access denied")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error": "FORBIDDEN", "message": "Admin access required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorised(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "UNAUTHORIZED", "message": "` + message + `"}`))
}
