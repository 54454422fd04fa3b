package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/fedblog/blog-server/internal/model"
)

// TokenVerifier is a testify mock of model.TokenVerifier.
type TokenVerifier struct {
	mock.Mock
}

func (m *TokenVerifier) Verify(tokenString string) (model.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Claims), args.Error(1)
}
