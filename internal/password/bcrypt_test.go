package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptEncoder_EncodeAndMatch(t *testing.T) {
	e := NewBcryptEncoder()

	hash, err := e.Encode("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, e.Matches("s3cret", hash))
	assert.False(t, e.Matches("wrong", hash))
}

func TestBcryptEncoder_DistinctHashes(t *testing.T) {
	e := NewBcryptEncoder()

	first, err := e.Encode("same password")
	require.NoError(t, err)
	second, err := e.Encode("same password")
	require.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, first, second)
}
