package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedblog/blog-server/internal/model"
)

func TestManager_SetAndGetPrincipal(t *testing.T) {
	m := NewManager()
	principal := model.Principal{
		User:        model.User{ID: uuid.New(), Email: "a@b.c"},
		Authorities: []string{"ROLE_user"},
	}

	ctx := m.SetPrincipalToContext(context.Background(), principal)

	got, ok := m.GetPrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, principal, got)
}

func TestManager_GetPrincipal_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetPrincipalFromContext(context.Background())
	assert.False(t, ok)
}
