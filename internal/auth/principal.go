// Package auth derives authorization-ready principals from verified bearer
// tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
)

// Resolver turns a verified token's claim set into a Principal backed by a
// local user record. A verified external token with no matching local record
// is never treated as authenticated.
type Resolver struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(userStore model.UserStore, logger *logger.Logger) *Resolver {
	return &Resolver{userStore: userStore, logger: logger}
}

// Resolve extracts the identifying claim (email, then preferred_username,
// then sub), looks up the local user and aggregates the token's roles into
// the principal's authority set.
func (r *Resolver) Resolve(ctx context.Context, claims model.Claims) (model.Principal, error) {
	identifier := identifierFromClaims(claims)
	if identifier == "" {
		return model.Principal{}, model.NewErrAuthenticationFailed(fmt.Errorf("token carries no identifying claim"))
	}

	user, err := r.userStore.GetByEmail(ctx, identifier)
	if errors.Is(err, model.ErrNotFound) {
		r.logger.Info("Principal resolution: no local record for token identity",
			"identifier", identifier)
		return model.Principal{}, model.NewErrAuthenticationFailed(model.NewErrUserNotFound())
	}
	if err != nil {
		return model.Principal{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	principal := model.Principal{
		User:        user,
		Authorities: authoritiesFromClaims(claims),
	}

	r.logger.Debug("Principal resolution: resolved",
		"principal", principal.Name(),
		"authorities", principal.Authorities)

	return principal, nil
}

// identifierFromClaims returns the first non-empty identifying claim in
// priority order.
func identifierFromClaims(claims model.Claims) string {
	for _, name := range []string{"email", "preferred_username", "sub"} {
		if value, ok := claims[name].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// authoritiesFromClaims aggregates roles from realm_access.roles and
// resource_access.account.roles, de-duplicated and ROLE_-prefixed. Any shape
// mismatch contributes no roles from that source.
func authoritiesFromClaims(claims model.Claims) []string {
	seen := make(map[string]struct{})

	for _, role := range rolesFromAccess(claims["realm_access"]) {
		seen[model.RolePrefix+role] = struct{}{}
	}

	if resourceAccess, ok := claims["resource_access"].(map[string]any); ok {
		for _, role := range rolesFromAccess(resourceAccess["account"]) {
			seen[model.RolePrefix+role] = struct{}{}
		}
	}

	authorities := make([]string, 0, len(seen))
	for authority := range seen {
		authorities = append(authorities, authority)
	}
	sort.Strings(authorities)

	return authorities
}

// rolesFromAccess decodes a {"roles": [...]} claim sub-structure defensively.
func rolesFromAccess(value any) []string {
	access, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := access["roles"].([]any)
	if !ok {
		return nil
	}

	var roles []string
	for _, entry := range raw {
		if role, ok := entry.(string); ok && role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
