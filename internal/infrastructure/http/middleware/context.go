package middleware

import (
	"context"

	"github.com/WojciechM98/Team-Management-System/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal injects the authenticated user into the context.
func WithPrincipal(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, principalContextKey, user)
}

// PrincipalFromContext returns the authenticated user from the context, or nil.
func PrincipalFromContext(ctx context.Context) *domain.User {
	v := ctx.Value(principalContextKey)
	if v == nil {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
