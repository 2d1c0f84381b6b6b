package utils

import (
	"context"

	"luminacine/internal/data/entity"
)

type contextKey string

const (
	SessionKey       contextKey = "session"
	UserIDKey        contextKey = "user_id"
	RoleKey          contextKey = "role"
	TokenKey         contextKey = "token"
	CorrelationIDKey contextKey = "correlation_id"
)

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetUserContext(ctx context.Context, userID string, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetTokenFromContext returns the backend bearer token of the current session
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok && token != ""
}

// SetTokenContext stores the backend bearer token for outbound calls
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// SetSessionContext attaches the resolved browser session together with
// the user, role and backend token derived from it.
func SetSessionContext(ctx context.Context, session *entity.Session) context.Context {
	ctx = context.WithValue(ctx, SessionKey, session)
	ctx = SetUserContext(ctx, session.UserID.String(), string(session.Role))
	return SetTokenContext(ctx, session.BackendToken)
}

func GetSessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*entity.Session)
	return session, ok && session != nil
}

func SetCorrelationIDContext(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

func GetCorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CorrelationIDKey).(string)
	return id, ok && id != ""
}
