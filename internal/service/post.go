package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
	"github.com/fedblog/blog-server/internal/validate"
)

// Sanitizer strips unsafe markup from user-authored content.
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// Post enforces ownership and uniqueness invariants on post mutations.
// Reads are public and carry no authorization gate.
type Post struct {
	postStore model.PostStore
	userStore model.UserStore
	sanitizer Sanitizer
	logger    *logger.Logger
}

// NewPost creates a new Post service.
func NewPost(
	postStore model.PostStore,
	userStore model.UserStore,
	sanitizer Sanitizer,
	logger *logger.Logger,
) *Post {
	return &Post{
		postStore: postStore,
		userStore: userStore,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Create persists a new post owned by owner. The (title, owner) pair must be
// free; the published date is stamped once here and never changed.
func (s *Post) Create(ctx context.Context, owner model.User, post model.Post) (model.Post, error) {
	if err := validate.Input("title", post.Title); err != nil {
		return model.Post{}, err
	}
	if err := validate.Input("content", post.Content); err != nil {
		return model.Post{}, err
	}

	exists, err := s.userStore.ExistsByID(ctx, owner.ID)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return model.Post{}, model.NewErrUserNotFound()
	}

	taken, err := s.postStore.ExistsByTitleAndOwner(ctx, post.Title, owner.ID)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to check post existence: %w", err)
	}
	if taken {
		return model.Post{}, model.NewErrPostAlreadyExists(post.Title)
	}

	post.ID = uuid.New()
	post.OwnerID = owner.ID
	post.Content = s.sanitizer.Sanitize(post.Content)
	post.PublishedDate = time.Now()
	post.UpdatedDate = nil

	savedPost, err := s.postStore.Save(ctx, post)
	if err != nil {
		// the unique index backs the pre-check under concurrency
		if errors.Is(err, model.ErrConflict) {
			return model.Post{}, model.NewErrPostAlreadyExists(post.Title)
		}
		return model.Post{}, fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Info("Post service: post created",
		"post_id", savedPost.ID,
		"owner_id", savedPost.OwnerID)

	return savedPost, nil
}

// Delete removes a post. Only the owner may delete it.
func (s *Post) Delete(ctx context.Context, user model.User, postID uuid.UUID) error {
	exists, err := s.userStore.ExistsByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return model.NewErrUserNotFound()
	}

	post, err := s.postStore.GetByID(ctx, postID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewErrPostNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if post.OwnerID != user.ID {
		return model.NewErrAccessDenied("You're not allowed to delete this post")
	}

	if err := s.postStore.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewErrPostNotFound()
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("Post service: post deleted", "post_id", post.ID, "owner_id", user.ID)
	return nil
}

// Edit applies title and content from the incoming payload onto the stored
// record. Ownership is re-checked against the stored record, never the
// payload, and the merged record is what gets persisted.
func (s *Post) Edit(ctx context.Context, user model.User, updatedPost model.Post) (model.Post, error) {
	if err := validate.Input("title", updatedPost.Title); err != nil {
		return model.Post{}, err
	}
	if err := validate.Input("content", updatedPost.Content); err != nil {
		return model.Post{}, err
	}

	exists, err := s.userStore.ExistsByID(ctx, user.ID)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return model.Post{}, model.NewErrUserNotFound()
	}

	storedPost, err := s.postStore.GetByID(ctx, updatedPost.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.NewErrPostNotFound()
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	if storedPost.OwnerID != user.ID {
		return model.Post{}, model.NewErrAccessDenied("You're not allowed to edit this post")
	}

	now := time.Now()
	storedPost.Title = updatedPost.Title
	storedPost.Content = s.sanitizer.Sanitize(updatedPost.Content)
	storedPost.UpdatedDate = &now

	savedPost, err := s.postStore.Save(ctx, storedPost)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.Post{}, model.NewErrPostAlreadyExists(storedPost.Title)
		}
		return model.Post{}, fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Info("Post service: post edited", "post_id", savedPost.ID, "owner_id", user.ID)
	return savedPost, nil
}

// View returns a post by id. Reads are public.
func (s *Post) View(ctx context.Context, postID uuid.UUID) (model.Post, error) {
	post, err := s.postStore.GetByID(ctx, postID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Post{}, model.NewErrPostNotFound()
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// ListByOwner returns all posts of an existing owner. An owner with zero
// posts is reported as post-not-found; the original API behaves this way and
// callers depend on it.
func (s *Post) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	exists, err := s.userStore.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, model.NewErrUserNotFound()
	}

	posts, err := s.postStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by owner: %w", err)
	}
	if len(posts) == 0 {
		return nil, model.NewErrPostNotFound()
	}

	return posts, nil
}
