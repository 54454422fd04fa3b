package model

import "context"

// IdentityProvider abstracts the external identity provider that is the
// system of record for credentials and session tokens. Implementations map
// provider status signals onto the domain error taxonomy: a conflict on
// creation becomes ErrUserAlreadyExists, a credential mismatch becomes
// ErrAuthenticationFailed, anything else becomes ErrIdentityManager.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, user User, password string) (externalID string, err error)
	DeleteIdentity(ctx context.Context, externalID string) error
	Authenticate(ctx context.Context, email string, password string) (SessionTokens, error)
	EndSession(ctx context.Context, refreshToken string) error
	ResetCredential(ctx context.Context, email string, newPassword string) error
	FindByEmail(ctx context.Context, email string) (ExternalProfile, error)
}

// SessionTokens carries the session material issued by the identity provider
// on successful authentication.
type SessionTokens struct {
	AccessToken      string
	RefreshToken     string
	IDToken          string
	TokenType        string
	Scope            string
	ExpiresIn        int
	RefreshExpiresIn int
}

// ExternalProfile is the provider-side view of an identity.
type ExternalProfile struct {
	ID            string
	Email         string
	Username      string
	FirstName     string
	LastName      string
	Enabled       bool
	EmailVerified bool
}
