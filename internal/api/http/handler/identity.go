package handler

import (
	"context"
	"net/http"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
)

// IdentityService defines registration, session and credential operations.
type IdentityService interface {
	SignUp(ctx context.Context, user model.User, password string) (model.User, error)
	Login(ctx context.Context, email string, password string) (model.LoggedInUser, error)
	Logout(ctx context.Context, refreshToken string) error
	ResetPassword(ctx context.Context, email string, newPassword string) error
}

// Identity handles HTTP endpoints for registration and sessions.
type Identity struct {
	identityService IdentityService
	logger          *logger.Logger
}

// NewIdentity creates a new Identity handler.
func NewIdentity(identityService IdentityService, logger *logger.Logger) *Identity {
	return &Identity{identityService: identityService, logger: logger}
}

type signUpRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}

// SignUp registers a new user.
// POST /api/v1/users/user
func (h *Identity) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Identity handler: processing sign-up request",
		"email", req.Email)

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := model.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}

	saved, err := h.identityService.SignUp(r.Context(), user, req.Password)
	if err != nil {
		h.logger.Error("Identity handler: sign-up failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Identity handler: sign-up completed",
		"user_id", saved.ID,
		"email", saved.Email)

	writeJSON(w, http.StatusCreated, toUserResponse(saved))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken      string       `json:"accessToken"`
	RefreshToken     string       `json:"refreshToken"`
	IDToken          string       `json:"idToken,omitempty"`
	TokenType        string       `json:"tokenType"`
	Scope            string       `json:"scope,omitempty"`
	ExpiresIn        int          `json:"expiresIn"`
	RefreshExpiresIn int          `json:"refreshExpiresIn"`
	User             userResponse `json:"user"`
}

// Login authenticates a user against the identity provider and returns the
// issued session tokens.
// POST /api/v1/users/login
func (h *Identity) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Identity handler: processing login request",
		"email", req.Email)

	loggedIn, err := h.identityService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Identity handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Identity handler: login completed",
		"user_id", loggedIn.ID)

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:      loggedIn.Session.AccessToken,
		RefreshToken:     loggedIn.Session.RefreshToken,
		IDToken:          loggedIn.Session.IDToken,
		TokenType:        loggedIn.Session.TokenType,
		Scope:            loggedIn.Session.Scope,
		ExpiresIn:        loggedIn.Session.ExpiresIn,
		RefreshExpiresIn: loggedIn.Session.RefreshExpiresIn,
		User:             toUserResponse(loggedIn.User),
	})
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Logout ends the session held by the given refresh token.
// POST /api/v1/users/logout
func (h *Identity) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Identity handler: processing logout request")

	if err := h.identityService.Logout(r.Context(), req.RefreshToken); err != nil {
		h.logger.Error("Identity handler: logout failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Identity handler: logout completed")

	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword replaces the credential of an existing user.
// POST /api/v1/users/reset-password
func (h *Identity) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Identity handler: processing password reset request",
		"email", req.Email)

	if err := h.identityService.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		h.logger.Error("Identity handler: password reset failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Identity handler: password reset completed",
		"email", req.Email)

	w.WriteHeader(http.StatusNoContent)
}
