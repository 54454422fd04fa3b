package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
)

// CommentService defines comment lifecycle operations.
type CommentService interface {
	Create(ctx context.Context, comment model.Comment, user model.User, postID uuid.UUID) (model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	Delete(ctx context.Context, commentID uuid.UUID, postID uuid.UUID, user model.User) error
}

// Comment handles HTTP endpoints for comments.
type Comment struct {
	commentService CommentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewComment creates a new Comment handler.
func NewComment(commentService CommentService, contextManager model.ContextManager, logger *logger.Logger) *Comment {
	return &Comment{
		commentService: commentService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"authorId"`
	PostID      string    `json:"postId"`
	CommentedAt time.Time `json:"commentedAt"`
}

func toCommentResponse(comment model.Comment) commentResponse {
	return commentResponse{
		ID:          comment.ID.String(),
		Content:     comment.Content,
		AuthorID:    comment.AuthorID.String(),
		PostID:      comment.PostID.String(),
		CommentedAt: comment.CommentedAt,
	}
}

// Create attaches a comment to a post.
// POST /api/v1/posts/{postID}/comments
func (h *Comment) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, model.NewErrAuthenticationFailed(nil))
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("postID"))
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Comment handler: processing create request",
		"post_id", postID,
		"author_id", principal.User.ID)

	comment, err := h.commentService.Create(r.Context(), model.Comment{Content: req.Content}, principal.User, postID)
	if err != nil {
		h.logger.Error("Comment handler: create failed",
			"post_id", postID,
			"author_id", principal.User.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// ListByPost returns all comments of a post. Reads are public and an empty
// list is a valid result.
// GET /api/v1/posts/{postID}/comments
func (h *Comment) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("postID"))
		return
	}

	comments, err := h.commentService.ListByPost(r.Context(), postID)
	if err != nil {
		handleError(w, err)
		return
	}

	responses := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, toCommentResponse(comment))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Delete removes a comment. Allowed for the comment's author and the post's
// owner.
// DELETE /api/v1/posts/{postID}/comments/{commentID}
func (h *Comment) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, model.NewErrAuthenticationFailed(nil))
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("postID"))
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("commentID"))
		return
	}

	h.logger.Debug("Comment handler: processing delete request",
		"comment_id", commentID,
		"post_id", postID,
		"user_id", principal.User.ID)

	if err := h.commentService.Delete(r.Context(), commentID, postID, principal.User); err != nil {
		h.logger.Error("Comment handler: delete failed",
			"comment_id", commentID,
			"post_id", postID,
			"user_id", principal.User.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
