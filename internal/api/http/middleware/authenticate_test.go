package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apicontext "github.com/fedblog/blog-server/internal/api/http/context"
	"github.com/fedblog/blog-server/internal/mocks"
	"github.com/fedblog/blog-server/internal/model"
	"github.com/fedblog/blog-server/internal/testutil"
)

type resolverStub struct {
	principal model.Principal
	err       error
}

func (r resolverStub) Resolve(_ context.Context, _ model.Claims) (model.Principal, error) {
	return r.principal, r.err
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	principal := model.Principal{User: model.User{ID: uuid.New(), Email: "a@b.c"}}

	tests := []struct {
		name        string
		authHeader  string
		verifyErr   error
		resolveErr  error
		wantStatus  int
		wantReached bool
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed authorization header",
			authHeader: "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			verifyErr:  errors.New("signature mismatch"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no local record behind the token",
			authHeader: "Bearer good",
			resolveErr: model.NewErrAuthenticationFailed(model.NewErrUserNotFound()),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "valid token",
			authHeader:  "Bearer good",
			wantStatus:  http.StatusOK,
			wantReached: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verifier := &mocks.TokenVerifier{}
			if tt.verifyErr != nil {
				verifier.On("Verify", "bad").Return(nil, tt.verifyErr)
			} else {
				verifier.On("Verify", "good").Return(model.Claims{"email": "a@b.c"}, nil)
			}

			contextManager := apicontext.NewManager()
			m := NewAuthenticate(verifier, resolverStub{principal: principal, err: tt.resolveErr}, contextManager, testutil.MakeNoopLogger())

			var reached bool
			var gotPrincipal model.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotPrincipal, _ = contextManager.GetPrincipalFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantReached {
				assert.Equal(t, principal, gotPrincipal)
			}
		})
	}
}
