package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"luminacine/internal/data/entity"
	"luminacine/pkg/utils"

	"go.uber.org/zap"
)

// SessionResolver turns a browser session token into the session it names.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entity.Session, error)
}

// SessionToken reads the session token from the Authorization header,
// falling back to the session cookie.
func SessionToken(r *http.Request, cookieName string) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", false
		}
		return strings.TrimSpace(token), true
	}

	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// AuthSession middleware untuk validasi session token UUID. Resolver errors
// matching invalid end the session; anything else is a server error.
func AuthSession(resolver SessionResolver, cookieName string, invalid error, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := SessionToken(r, cookieName)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing session token", loginRedirect)
				return
			}

			session, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, invalid) {
					logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
					ClearSessionCookie(w, cookieName)
					utils.ResponseUnauthorized(w, "Invalid or expired session", loginRedirect)
					return
				}

				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), session)))
		})
	}
}

// Admin - middleware cek role admin, must run after AuthSession
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required", loginRedirect)
				return
			}

			if role, _ := utils.GetRoleFromContext(r.Context()); role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

var loginRedirect = map[string]string{"redirect": "/"}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
}
