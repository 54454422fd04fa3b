package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
)

// PrincipalResolver turns a verified claim set into an authorization-ready
// principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, claims model.Claims) (model.Principal, error)
}

// Authenticate validates bearer tokens, resolves the principal and injects it
// into the request context.
type Authenticate struct {
	verifier       model.TokenVerifier
	resolver       PrincipalResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	verifier model.TokenVerifier,
	resolver PrincipalResolver,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		verifier:       verifier,
		resolver:       resolver,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle parses the Authorization header, verifies the token, resolves the
// principal and passes the request on with the principal in context. Requests
// without a valid token get 401 before the handler is reached.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			m.writeUnauthorized(w, "missing authorization token")
			return
		}

		claims, err := m.verifier.Verify(tokenString)
		if err != nil {
			m.logger.Info("Authenticate middleware: token rejected",
				"error", err.Error())
			m.writeUnauthorized(w, "invalid authorization token")
			return
		}

		principal, err := m.resolver.Resolve(r.Context(), claims)
		if err != nil {
			m.logger.Info("Authenticate middleware: principal resolution failed",
				"error", err.Error())
			m.writeUnauthorized(w, "invalid authorization token")
			return
		}

		ctx := m.contextManager.SetPrincipalToContext(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (m *Authenticate) writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    model.CodeAuthenticationFailed,
		"message": message,
	})
}
