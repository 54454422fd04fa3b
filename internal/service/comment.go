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

// Comment enforces post-linkage and the author-or-owner deletion rule.
type Comment struct {
	commentStore model.CommentStore
	postStore    model.PostStore
	userStore    model.UserStore
	sanitizer    Sanitizer
	logger       *logger.Logger
}

// NewComment creates a new Comment service.
func NewComment(
	commentStore model.CommentStore,
	postStore model.PostStore,
	userStore model.UserStore,
	sanitizer Sanitizer,
	logger *logger.Logger,
) *Comment {
	return &Comment{
		commentStore: commentStore,
		postStore:    postStore,
		userStore:    userStore,
		sanitizer:    sanitizer,
		logger:       logger,
	}
}

// Create attaches a new comment to postID authored by user. The comment
// timestamp is stamped server-side and the record is immutable afterwards.
func (s *Comment) Create(ctx context.Context, comment model.Comment, user model.User, postID uuid.UUID) (model.Comment, error) {
	if err := validate.Input("content", comment.Content); err != nil {
		return model.Comment{}, err
	}

	author, err := s.userStore.GetByID(ctx, user.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Comment{}, model.NewErrUserNotFound()
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	post, err := s.postStore.GetByID(ctx, postID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Comment{}, model.NewErrPostNotFound()
	}
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to get post by id: %w", err)
	}

	comment.ID = uuid.New()
	comment.AuthorID = author.ID
	comment.PostID = post.ID
	comment.Content = s.sanitizer.Sanitize(comment.Content)
	comment.CommentedAt = time.Now()

	savedComment, err := s.commentStore.Save(ctx, comment)
	if err != nil {
		return model.Comment{}, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info("Comment service: comment created",
		"comment_id", savedComment.ID,
		"post_id", savedComment.PostID,
		"author_id", savedComment.AuthorID)

	return savedComment, nil
}

// ListByPost returns all comments of an existing post. An empty list is a
// valid result, unlike posts.
func (s *Comment) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	exists, err := s.postStore.ExistsByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return nil, model.NewErrPostNotFound()
	}

	comments, err := s.commentStore.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by post: %w", err)
	}

	return comments, nil
}

// Delete removes a comment. Allowed for the comment's author and for the
// parent post's owner; everyone else is denied before the store's delete is
// reached.
func (s *Comment) Delete(ctx context.Context, commentID uuid.UUID, postID uuid.UUID, user model.User) error {
	comment, err := s.commentStore.GetByIDAndPostID(ctx, commentID, postID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewErrCommentNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}

	post, err := s.postStore.GetByID(ctx, comment.PostID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewErrPostNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if user.ID != comment.AuthorID && user.ID != post.OwnerID {
		return model.NewErrAccessDenied("You are not allowed to delete this comment")
	}

	if err := s.commentStore.DeleteByID(ctx, comment.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewErrCommentNotFound()
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.Info("Comment service: comment deleted",
		"comment_id", comment.ID,
		"post_id", comment.PostID,
		"deleted_by", user.ID)

	return nil
}
