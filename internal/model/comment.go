package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommentStore defines persistence operations for comments.
type CommentStore interface {
	Save(ctx context.Context, comment Comment) (Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	GetByIDAndPostID(ctx context.Context, id uuid.UUID, postID uuid.UUID) (Comment, error)
}

// Comment represents a reply attached to a post. Comments are never edited:
// CommentedAt is stamped server-side at creation and the record is immutable
// until deleted.
type Comment struct {
	ID          uuid.UUID
	Content     string
	AuthorID    uuid.UUID
	PostID      uuid.UUID
	CommentedAt time.Time
}
