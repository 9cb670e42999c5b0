package auth

import (
	"context"

	"github.com/imovelhub/crm-api/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "sessionUser"

// WithSession adds the authenticated session user to the context.
func WithSession(ctx context.Context, user *domain.SessionUser) context.Context {
	return context.WithValue(ctx, sessionContextKey, user)
}

// SessionFromContext extracts the session user from the context.
func SessionFromContext(ctx context.Context) (*domain.SessionUser, bool) {
	user, ok := ctx.Value(sessionContextKey).(*domain.SessionUser)
	return user, ok
}

// MustSessionFromContext extracts the session user or panics. Only for
// handlers mounted behind the Authenticate middleware.
func MustSessionFromContext(ctx context.Context) *domain.SessionUser {
	user, ok := SessionFromContext(ctx)
	if !ok {
		panic("session user not found in context")
	}
	return user
}
