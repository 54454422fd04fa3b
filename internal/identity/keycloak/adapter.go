// Package keycloak implements the identity provider port against Keycloak's
// admin and token endpoints.
package keycloak

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Nerzal/gocloak/v13"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
)

// Config contains realm and client parameters. The admin credentials are used
// for identity management; the application client is used for the password
// grant and logout.
type Config struct {
	Realm         string
	ClientID      string
	ClientSecret  string
	AdminUser     string
	AdminPassword string
	AdminRealm    string
}

// Adapter talks to Keycloak and maps its status signals onto the domain
// error taxonomy.
type Adapter struct {
	client *gocloak.GoCloak
	config Config
	logger *logger.Logger
}

var _ model.IdentityProvider = (*Adapter)(nil)

// New creates an Adapter for the Keycloak instance at baseURL.
func New(baseURL string, config Config, logger *logger.Logger) *Adapter {
	return &Adapter{
		client: gocloak.NewClient(baseURL),
		config: config,
		logger: logger,
	}
}

func (a *Adapter) adminToken(ctx context.Context) (string, error) {
	jwt, err := a.client.LoginAdmin(ctx, a.config.AdminUser, a.config.AdminPassword, a.config.AdminRealm)
	if err != nil {
		return "", model.NewErrIdentityManager(fmt.Errorf("admin login failed: %w", err))
	}
	return jwt.AccessToken, nil
}

// CreateIdentity creates the user in Keycloak with a permanent password
// credential and grants the requested realm role. A provider-side conflict is
// reported the same way as the local pre-check failure.
func (a *Adapter) CreateIdentity(ctx context.Context, user model.User, password string) (string, error) {
	token, err := a.adminToken(ctx)
	if err != nil {
		return "", err
	}

	representation := gocloak.User{
		Username:      gocloak.StringP(user.Email),
		Email:         gocloak.StringP(user.Email),
		FirstName:     gocloak.StringP(user.FirstName),
		LastName:      gocloak.StringP(user.LastName),
		Enabled:       gocloak.BoolP(true),
		EmailVerified: gocloak.BoolP(true),
		Credentials: &[]gocloak.CredentialRepresentation{{
			Type:      gocloak.StringP("password"),
			Value:     gocloak.StringP(password),
			Temporary: gocloak.BoolP(false),
		}},
	}

	externalID, err := a.client.CreateUser(ctx, token, a.config.Realm, representation)
	if err != nil {
		if statusCode(err) == http.StatusConflict {
			return "", model.NewErrUserAlreadyExists(user.Email)
		}
		return "", model.NewErrIdentityManager(fmt.Errorf("failed to create identity: %w", err))
	}

	if err := a.assignRealmRole(ctx, token, externalID, user.Role); err != nil {
		return "", err
	}

	a.logger.Info("Keycloak adapter: identity created",
		"email", user.Email,
		"external_id", externalID,
		"role", user.Role)

	return externalID, nil
}

func (a *Adapter) assignRealmRole(ctx context.Context, token string, externalID string, roleName string) error {
	role, err := a.client.GetRealmRole(ctx, token, a.config.Realm, roleName)
	if err != nil {
		return model.NewErrIdentityManager(fmt.Errorf("role %q does not exist: %w", roleName, err))
	}

	if err := a.client.AddRealmRoleToUser(ctx, token, a.config.Realm, externalID, []gocloak.Role{*role}); err != nil {
		return model.NewErrIdentityManager(fmt.Errorf("failed to assign role %q: %w", roleName, err))
	}

	return nil
}

// DeleteIdentity removes a provider-side identity. Used to reconcile an
// orphaned identity after a failed local save.
func (a *Adapter) DeleteIdentity(ctx context.Context, externalID string) error {
	token, err := a.adminToken(ctx)
	if err != nil {
		return err
	}

	if err := a.client.DeleteUser(ctx, token, a.config.Realm, externalID); err != nil {
		return model.NewErrIdentityManager(fmt.Errorf("failed to delete identity: %w", err))
	}

	return nil
}

// Authenticate performs the password grant against the realm.
func (a *Adapter) Authenticate(ctx context.Context, email string, password string) (model.SessionTokens, error) {
	jwt, err := a.client.Login(ctx, a.config.ClientID, a.config.ClientSecret, a.config.Realm, email, password)
	if err != nil {
		return model.SessionTokens{}, model.NewErrAuthenticationFailed(err)
	}

	return model.SessionTokens{
		AccessToken:      jwt.AccessToken,
		RefreshToken:     jwt.RefreshToken,
		IDToken:          jwt.IDToken,
		TokenType:        jwt.TokenType,
		Scope:            jwt.Scope,
		ExpiresIn:        jwt.ExpiresIn,
		RefreshExpiresIn: jwt.RefreshExpiresIn,
	}, nil
}

// EndSession invalidates the refresh token's session. Failures are surfaced
// unchanged as identity manager errors; logout is not retried.
func (a *Adapter) EndSession(ctx context.Context, refreshToken string) error {
	if err := a.client.Logout(ctx, a.config.ClientID, a.config.ClientSecret, a.config.Realm, refreshToken); err != nil {
		return model.NewErrIdentityManager(fmt.Errorf("failed to end session: %w", err))
	}

	return nil
}

// ResetCredential sets a new permanent password for the identity matching
// email. Any provider-side failure is reported as an authentication failure.
func (a *Adapter) ResetCredential(ctx context.Context, email string, newPassword string) error {
	token, err := a.adminToken(ctx)
	if err != nil {
		return err
	}

	profile, err := a.findByEmail(ctx, token, email)
	if err != nil {
		return model.NewErrAuthenticationFailed(fmt.Errorf("failed to find identity for reset: %w", err))
	}

	if err := a.client.SetPassword(ctx, token, profile.ID, a.config.Realm, newPassword, false); err != nil {
		return model.NewErrAuthenticationFailed(fmt.Errorf("failed to reset credential: %w", err))
	}

	return nil
}

// FindByEmail looks up the provider-side identity for email.
func (a *Adapter) FindByEmail(ctx context.Context, email string) (model.ExternalProfile, error) {
	token, err := a.adminToken(ctx)
	if err != nil {
		return model.ExternalProfile{}, err
	}

	return a.findByEmail(ctx, token, email)
}

func (a *Adapter) findByEmail(ctx context.Context, token string, email string) (model.ExternalProfile, error) {
	users, err := a.client.GetUsers(ctx, token, a.config.Realm, gocloak.GetUsersParams{
		Email: gocloak.StringP(email),
		Exact: gocloak.BoolP(true),
	})
	if err != nil {
		return model.ExternalProfile{}, model.NewErrIdentityManager(fmt.Errorf("failed to search identities: %w", err))
	}
	if len(users) == 0 {
		return model.ExternalProfile{}, model.ErrNotFound
	}

	return profileFromRepresentation(users[0]), nil
}

func profileFromRepresentation(user *gocloak.User) model.ExternalProfile {
	return model.ExternalProfile{
		ID:            gocloak.PString(user.ID),
		Email:         gocloak.PString(user.Email),
		Username:      gocloak.PString(user.Username),
		FirstName:     gocloak.PString(user.FirstName),
		LastName:      gocloak.PString(user.LastName),
		Enabled:       gocloak.PBool(user.Enabled),
		EmailVerified: gocloak.PBool(user.EmailVerified),
	}
}

// statusCode extracts the HTTP status from a gocloak error, or 0.
func statusCode(err error) int {
	var apiErr *gocloak.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
