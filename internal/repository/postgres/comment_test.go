package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommentRepository(t *testing.T) {
	db := &Connection{}
	repo := NewCommentRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
