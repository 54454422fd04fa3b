package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fedblog/blog-server/internal/model"
)

// IdentityProvider is a testify mock of model.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) CreateIdentity(ctx context.Context, user model.User, password string) (string, error) {
	args := m.Called(ctx, user, password)
	return args.String(0), args.Error(1)
}

func (m *IdentityProvider) DeleteIdentity(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

func (m *IdentityProvider) Authenticate(ctx context.Context, email string, password string) (model.SessionTokens, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.SessionTokens), args.Error(1)
}

func (m *IdentityProvider) EndSession(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *IdentityProvider) ResetCredential(ctx context.Context, email string, newPassword string) error {
	args := m.Called(ctx, email, newPassword)
	return args.Error(0)
}

func (m *IdentityProvider) FindByEmail(ctx context.Context, email string) (model.ExternalProfile, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.ExternalProfile), args.Error(1)
}
