package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fedblog/blog-server/internal/model"
)

// CommentStore is a testify mock of model.CommentStore.
type CommentStore struct {
	mock.Mock
}

func (m *CommentStore) Save(ctx context.Context, comment model.Comment) (model.Comment, error) {
	args := m.Called(ctx, comment)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *CommentStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *CommentStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CommentStore) GetByIDAndPostID(ctx context.Context, id uuid.UUID, postID uuid.UUID) (model.Comment, error) {
	args := m.Called(ctx, id, postID)
	return args.Get(0).(model.Comment), args.Error(1)
}
