package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
	"github.com/fedblog/blog-server/internal/validate"
)

// PasswordEncoder produces the opaque one-way verifier stored locally.
type PasswordEncoder interface {
	Encode(password string) (string, error)
}

// Identity orchestrates sign-up, login, logout and reset-password across the
// external identity provider and the local user store. The provider is the
// system of record for credentials; the local store is the system of record
// for profile and authorization data.
type Identity struct {
	userStore model.UserStore
	provider  model.IdentityProvider
	encoder   PasswordEncoder
	logger    *logger.Logger
}

// NewIdentity creates a new Identity service.
func NewIdentity(
	userStore model.UserStore,
	provider model.IdentityProvider,
	encoder PasswordEncoder,
	logger *logger.Logger,
) *Identity {
	return &Identity{
		userStore: userStore,
		provider:  provider,
		encoder:   encoder,
		logger:    logger,
	}
}

// SignUp creates the identity provider-side first, then persists the local
// record. If the local save fails after the provider call succeeded, the
// just-created external identity is deleted best-effort so a retry converges
// instead of leaving an orphan.
func (s *Identity) SignUp(ctx context.Context, user model.User, password string) (model.User, error) {
	s.logger.Debug("Identity service: starting sign-up", "email", user.Email)

	if err := s.validateSignUp(user, password); err != nil {
		return model.User{}, err
	}

	exists, err := s.userStore.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check user existence by email: %w", err)
	}
	if exists {
		s.logger.Info("Identity service: user already exists", "email", user.Email)
		return model.User{}, model.NewErrUserAlreadyExists(user.Email)
	}

	passwordHash, err := s.encoder.Encode(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to encode password: %w", err)
	}

	externalID, err := s.provider.CreateIdentity(ctx, user, password)
	if err != nil {
		s.logger.Error("Identity service: provider identity creation failed",
			"email", user.Email,
			"error", err.Error())
		return model.User{}, err
	}

	user.ID = uuid.New()
	user.PasswordHash = passwordHash
	user.ExternalID = externalID
	user.Enabled = true
	user.EmailVerified = true

	savedUser, err := s.userStore.Save(ctx, user)
	if err != nil {
		s.reconcileOrphanedIdentity(ctx, externalID, user.Email)
		if errors.Is(err, model.ErrConflict) {
			return model.User{}, model.NewErrUserAlreadyExists(user.Email)
		}
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("Identity service: user signed up",
		"email", savedUser.Email,
		"user_id", savedUser.ID,
		"external_id", savedUser.ExternalID)

	savedUser.PasswordHash = ""
	return savedUser, nil
}

func (s *Identity) validateSignUp(user model.User, password string) error {
	if err := validate.Input("email", user.Email); err != nil {
		return err
	}
	if err := validate.Input("username", user.Username); err != nil {
		return err
	}
	if err := validate.Input("firstName", user.FirstName); err != nil {
		return err
	}
	if err := validate.Input("lastName", user.LastName); err != nil {
		return err
	}
	if err := validate.Input("password", password); err != nil {
		return err
	}
	return validate.Input("role", user.Role)
}

// reconcileOrphanedIdentity deletes an external identity whose local record
// could not be saved. Failure here leaves an orphan; it is logged and the
// original error still wins.
func (s *Identity) reconcileOrphanedIdentity(ctx context.Context, externalID string, email string) {
	if err := s.provider.DeleteIdentity(ctx, externalID); err != nil {
		s.logger.Error("Identity service: failed to delete orphaned external identity",
			"email", email,
			"external_id", externalID,
			"error", err.Error())
	}
}

// Login authenticates against the identity provider first; the local
// verifier is not compared because the provider already checked the
// credential. A provider-authenticated email with no local record fails with
// user-not-found.
func (s *Identity) Login(ctx context.Context, email string, password string) (model.LoggedInUser, error) {
	s.logger.Debug("Identity service: starting login", "email", email)

	if err := validate.Input("email", email); err != nil {
		return model.LoggedInUser{}, err
	}
	if err := validate.Input("password", password); err != nil {
		return model.LoggedInUser{}, err
	}

	tokens, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Info("Identity service: provider rejected credentials", "email", email)
		return model.LoggedInUser{}, err
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.LoggedInUser{}, model.NewErrUserNotFound()
	}
	if err != nil {
		return model.LoggedInUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.Enabled {
		s.logger.Info("Identity service: login rejected, account disabled", "email", email)
		return model.LoggedInUser{}, model.NewErrAuthenticationFailed(errors.New("account is not enabled"))
	}

	s.logger.Info("Identity service: user logged in", "email", email, "user_id", user.ID)

	user.PasswordHash = ""
	return model.LoggedInUser{User: user, Session: tokens}, nil
}

// Logout invalidates the session at the identity provider. Failures are
// surfaced unchanged; logout is not retried.
func (s *Identity) Logout(ctx context.Context, refreshToken string) error {
	if err := validate.Input("refreshToken", refreshToken); err != nil {
		return err
	}

	if err := s.provider.EndSession(ctx, refreshToken); err != nil {
		s.logger.Error("Identity service: logout failed", "error", err.Error())
		return err
	}

	s.logger.Info("Identity service: user logged out")
	return nil
}

// ResetPassword sets the new credential at the identity provider, then
// re-encodes and persists the local verifier so both systems agree. On a
// provider failure the local verifier is left untouched.
func (s *Identity) ResetPassword(ctx context.Context, email string, newPassword string) error {
	s.logger.Debug("Identity service: starting password reset", "email", email)

	if err := validate.Input("email", email); err != nil {
		return err
	}
	if err := validate.Input("password", newPassword); err != nil {
		return err
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := s.provider.ResetCredential(ctx, email, newPassword); err != nil {
		s.logger.Error("Identity service: provider credential reset failed",
			"email", email,
			"error", err.Error())
		return err
	}

	passwordHash, err := s.encoder.Encode(newPassword)
	if err != nil {
		return fmt.Errorf("failed to encode password: %w", err)
	}

	if err := s.userStore.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	s.logger.Info("Identity service: password reset completed", "email", email, "user_id", user.ID)
	return nil
}
