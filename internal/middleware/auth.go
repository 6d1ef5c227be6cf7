// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/dtos"
)

// TokenResolver is the part of the token authority the middleware needs.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
	ResolveOptional(ctx context.Context, token string) *domain.User
}

// RequireAuth rejects requests without a resolvable "Bearer <token>" header.
func RequireAuth(tokens TokenResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				logger.Debug("missing bearer token", "path", r.URL.Path)
				writeUnauthorized(w)
				return
			}

			user, err := tokens.Resolve(r.Context(), token)
			if err != nil {
				if domain.KindOf(err) != domain.KindInvalidToken {
					logger.Error("token resolution failed", "error", err, "path", r.URL.Path)
					writeJSONError(w, http.StatusInternalServerError, domain.KindInternal, "internal server error")
					return
				}
				logger.Debug("invalid bearer token", "path", r.URL.Path)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user when the header resolves and otherwise passes the request on untouched.
func OptionalAuth(tokens TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := BearerToken(r); ok {
				if user := tokens.ResolveOptional(r.Context(), token); user != nil {
					ctx := context.WithValue(r.Context(), UserKey, user)
					ctx = context.WithValue(ctx, TokenKey, token)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the credential from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(UserKey).(*domain.User)
	return u, ok && u != nil
}

func TokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(TokenKey).(string)
	return t
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, domain.KindInvalidToken, domain.ErrInvalidToken.Message)
}

func writeJSONError(w http.ResponseWriter, status int, kind domain.ErrorKind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dtos.NewErrorResponse(kind, message))
}
