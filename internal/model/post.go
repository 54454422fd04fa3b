package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostStore defines persistence operations for posts.
type PostStore interface {
	Save(ctx context.Context, post Post) (Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByTitleAndOwner(ctx context.Context, title string, ownerID uuid.UUID) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Post, error)
}

// Post represents a stored content item. PublishedDate is set once at
// creation; UpdatedDate is set on every successful edit.
type Post struct {
	ID            uuid.UUID
	Title         string
	Content       string
	OwnerID       uuid.UUID
	PublishedDate time.Time
	UpdatedDate   *time.Time
}
