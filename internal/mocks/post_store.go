package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fedblog/blog-server/internal/model"
)

// PostStore is a testify mock of model.PostStore.
type PostStore struct {
	mock.Mock
}

func (m *PostStore) Save(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *PostStore) ExistsByTitleAndOwner(ctx context.Context, title string, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, title, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *PostStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}
