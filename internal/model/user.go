package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines local persistence operations for users.
type UserStore interface {
	Save(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// User represents a locally stored user linked to an external identity.
// PasswordHash is an opaque one-way verifier and is never exposed through
// the API; credential verification itself is the identity provider's job.
type User struct {
	ID            uuid.UUID
	Email         string
	Username      string
	FirstName     string
	LastName      string
	Role          string
	PasswordHash  string
	ExternalID    string
	Enabled       bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LoggedInUser is the login result: the local user view plus the session
// material issued by the identity provider. Session tokens are transient
// and never persisted locally.
type LoggedInUser struct {
	User
	Session SessionTokens
}
