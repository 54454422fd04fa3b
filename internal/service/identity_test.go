package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fedblog/blog-server/internal/mocks"
	"github.com/fedblog/blog-server/internal/model"
	"github.com/fedblog/blog-server/internal/testutil"
)

type fakeEncoder struct{}

func (fakeEncoder) Encode(password string) (string, error) {
	return "hashed:" + password, nil
}

func validSignUpUser() model.User {
	return model.User{
		Email:     "a@b.c",
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "user",
	}
}

func assertAPIErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *model.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	assert.Equal(t, code, apiErr.Code)
}

func TestIdentity_SignUp_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("ExistsByEmail", mock.Anything, "a@b.c").Return(false, nil)
	provider.On("CreateIdentity", mock.Anything, mock.Anything, "s3cret").Return("ext-1", nil)
	userStore.On("Save", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Enabled && u.EmailVerified && u.ExternalID == "ext-1" && u.PasswordHash == "hashed:s3cret"
	})).Return(model.User{ID: uuid.New(), Email: "a@b.c", ExternalID: "ext-1", Enabled: true, PasswordHash: "hashed:s3cret"}, nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	saved, err := s.SignUp(ctx, validSignUpUser(), "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ext-1", saved.ExternalID)
	assert.True(t, saved.Enabled)
	assert.Empty(t, saved.PasswordHash, "verifier must not leak out of sign-up")
	userStore.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestIdentity_SignUp_BlankField(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}
	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	user := validSignUpUser()
	user.FirstName = "   "

	_, err := s.SignUp(context.Background(), user, "s3cret")
	assertAPIErrorCode(t, err, model.CodeInvalidArgument)

	userStore.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	provider.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentity_SignUp_EmailTaken(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("ExistsByEmail", mock.Anything, "a@b.c").Return(true, nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.SignUp(context.Background(), validSignUpUser(), "s3cret")
	assertAPIErrorCode(t, err, model.CodeUserAlreadyExists)

	// second sign-up with the same email must never reach the provider
	provider.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentity_SignUp_ProviderConflict(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("ExistsByEmail", mock.Anything, "a@b.c").Return(false, nil)
	provider.On("CreateIdentity", mock.Anything, mock.Anything, "s3cret").
		Return("", model.NewErrUserAlreadyExists("a@b.c"))

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.SignUp(context.Background(), validSignUpUser(), "s3cret")
	assertAPIErrorCode(t, err, model.CodeUserAlreadyExists)
	userStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIdentity_SignUp_LocalSaveFails_DeletesOrphan(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("ExistsByEmail", mock.Anything, "a@b.c").Return(false, nil)
	provider.On("CreateIdentity", mock.Anything, mock.Anything, "s3cret").Return("ext-1", nil)
	userStore.On("Save", mock.Anything, mock.Anything).Return(model.User{}, errors.New("db down"))
	provider.On("DeleteIdentity", mock.Anything, "ext-1").Return(nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.SignUp(context.Background(), validSignUpUser(), "s3cret")
	require.Error(t, err)
	provider.AssertCalled(t, "DeleteIdentity", mock.Anything, "ext-1")
}

func TestIdentity_SignUp_LocalConflict_MapsToAlreadyExists(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("ExistsByEmail", mock.Anything, "a@b.c").Return(false, nil)
	provider.On("CreateIdentity", mock.Anything, mock.Anything, "s3cret").Return("ext-1", nil)
	userStore.On("Save", mock.Anything, mock.Anything).Return(model.User{}, model.ErrConflict)
	provider.On("DeleteIdentity", mock.Anything, "ext-1").Return(nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.SignUp(context.Background(), validSignUpUser(), "s3cret")
	assertAPIErrorCode(t, err, model.CodeUserAlreadyExists)
}

func TestIdentity_Login_Success(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	tokens := model.SessionTokens{AccessToken: "at", RefreshToken: "rt", TokenType: "Bearer", ExpiresIn: 300}
	provider.On("Authenticate", mock.Anything, "a@b.c", "s3cret").Return(tokens, nil)
	userStore.On("GetByEmail", mock.Anything, "a@b.c").
		Return(model.User{ID: uuid.New(), Email: "a@b.c", Enabled: true, PasswordHash: "hash"}, nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	loggedIn, err := s.Login(context.Background(), "a@b.c", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "at", loggedIn.Session.AccessToken)
	assert.Equal(t, "rt", loggedIn.Session.RefreshToken)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestIdentity_Login_NoLocalRecord(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	// provider authenticates the email, but no local record exists
	provider.On("Authenticate", mock.Anything, "ghost@b.c", "s3cret").Return(model.SessionTokens{AccessToken: "at"}, nil)
	userStore.On("GetByEmail", mock.Anything, "ghost@b.c").Return(model.User{}, model.ErrNotFound)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.Login(context.Background(), "ghost@b.c", "s3cret")
	assertAPIErrorCode(t, err, model.CodeUserNotFound)
}

func TestIdentity_Login_DisabledAccount(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	provider.On("Authenticate", mock.Anything, "a@b.c", "s3cret").Return(model.SessionTokens{}, nil)
	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(model.User{ID: uuid.New(), Enabled: false}, nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.Login(context.Background(), "a@b.c", "s3cret")
	assertAPIErrorCode(t, err, model.CodeAuthenticationFailed)
}

func TestIdentity_Login_ProviderRejects(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	provider.On("Authenticate", mock.Anything, "a@b.c", "wrong").
		Return(model.SessionTokens{}, model.NewErrAuthenticationFailed(errors.New("invalid_grant")))

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.Login(context.Background(), "a@b.c", "wrong")
	assertAPIErrorCode(t, err, model.CodeAuthenticationFailed)
	userStore.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestIdentity_Login_BlankCredentials(t *testing.T) {
	provider := &mocks.IdentityProvider{}
	s := NewIdentity(&mocks.UserStore{}, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	_, err := s.Login(context.Background(), "", "s3cret")
	assertAPIErrorCode(t, err, model.CodeInvalidArgument)

	_, err = s.Login(context.Background(), "a@b.c", " ")
	assertAPIErrorCode(t, err, model.CodeInvalidArgument)

	provider.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentity_Logout(t *testing.T) {
	provider := &mocks.IdentityProvider{}
	s := NewIdentity(&mocks.UserStore{}, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	err := s.Logout(context.Background(), "")
	assertAPIErrorCode(t, err, model.CodeInvalidArgument)

	provider.On("EndSession", mock.Anything, "rt").Return(nil).Once()
	require.NoError(t, s.Logout(context.Background(), "rt"))

	providerErr := model.NewErrIdentityManager(errors.New("session backend unavailable"))
	provider.On("EndSession", mock.Anything, "rt").Return(providerErr).Once()
	err = s.Logout(context.Background(), "rt")
	assertAPIErrorCode(t, err, model.CodeIdentityManager)
}

func TestIdentity_ResetPassword_UserNotFound(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("GetByEmail", mock.Anything, "ghost@b.c").Return(model.User{}, model.ErrNotFound)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	err := s.ResetPassword(context.Background(), "ghost@b.c", "newpass")
	assertAPIErrorCode(t, err, model.CodeUserNotFound)
	provider.AssertNotCalled(t, "ResetCredential", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentity_ResetPassword_ProviderFails_LocalUntouched(t *testing.T) {
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(model.User{ID: uuid.New()}, nil)
	provider.On("ResetCredential", mock.Anything, "a@b.c", "newpass").
		Return(model.NewErrAuthenticationFailed(errors.New("reset rejected")))

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	err := s.ResetPassword(context.Background(), "a@b.c", "newpass")
	assertAPIErrorCode(t, err, model.CodeAuthenticationFailed)
	userStore.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentity_ResetPassword_Success(t *testing.T) {
	userID := uuid.New()
	userStore := &mocks.UserStore{}
	provider := &mocks.IdentityProvider{}

	userStore.On("GetByEmail", mock.Anything, "a@b.c").Return(model.User{ID: userID}, nil)
	provider.On("ResetCredential", mock.Anything, "a@b.c", "newpass").Return(nil)
	userStore.On("UpdatePasswordHash", mock.Anything, userID, "hashed:newpass").Return(nil)

	s := NewIdentity(userStore, provider, fakeEncoder{}, testutil.MakeNoopLogger())

	require.NoError(t, s.ResetPassword(context.Background(), "a@b.c", "newpass"))
	userStore.AssertExpectations(t)
	provider.AssertExpectations(t)
}
