package context

import (
	"context"

	"github.com/fedblog/blog-server/internal/model"
)

type contextKey string

// principalKey is the context key the resolved principal is stored under.
const principalKey contextKey = "principal"

// Manager sets and retrieves the authenticated principal on a request
// context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalToContext returns a child context carrying the principal.
func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipalFromContext retrieves the principal set by the authentication
// middleware. The boolean reports whether a principal was present.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(model.Principal)
	return principal, ok
}
