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

// PostService defines post lifecycle operations.
type PostService interface {
	Create(ctx context.Context, owner model.User, post model.Post) (model.Post, error)
	Delete(ctx context.Context, user model.User, postID uuid.UUID) error
	Edit(ctx context.Context, user model.User, updatedPost model.Post) (model.Post, error)
	View(ctx context.Context, postID uuid.UUID) (model.Post, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error)
}

// Post handles HTTP endpoints for posts.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	OwnerID       string     `json:"ownerId"`
	PublishedDate time.Time  `json:"publishedDate"`
	UpdatedDate   *time.Time `json:"updatedDate,omitempty"`
}

func toPostResponse(post model.Post) postResponse {
	return postResponse{
		ID:            post.ID.String(),
		Title:         post.Title,
		Content:       post.Content,
		OwnerID:       post.OwnerID.String(),
		PublishedDate: post.PublishedDate,
		UpdatedDate:   post.UpdatedDate,
	}
}

// principal retrieves the authenticated principal or writes 401.
func (h *Post) principal(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		handleError(w, model.NewErrAuthenticationFailed(nil))
		return model.Principal{}, false
	}
	return principal, true
}

// Create publishes a new post owned by the caller.
// POST /api/v1/posts
func (h *Post) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Post handler: processing create request",
		"owner_id", principal.User.ID)

	post, err := h.postService.Create(r.Context(), principal.User, model.Post{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.logger.Error("Post handler: create failed",
			"owner_id", principal.User.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// View returns a single post. Reads are public.
// GET /api/v1/posts/{postID}
func (h *Post) View(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("postID"))
		return
	}

	post, err := h.postService.View(r.Context(), postID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Edit updates the title and content of a post owned by the caller.
// PUT /api/v1/posts/{postID}
func (h *Post) Edit(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("postID"))
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Post handler: processing edit request",
		"post_id", postID,
		"user_id", principal.User.ID)

	post, err := h.postService.Edit(r.Context(), principal.User, model.Post{
		ID:      postID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.logger.Error("Post handler: edit failed",
			"post_id", postID,
			"user_id", principal.User.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(post))
}

// Delete removes a post owned by the caller.
// DELETE /api/v1/posts/{postID}
func (h *Post) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("postID"))
		return
	}

	h.logger.Debug("Post handler: processing delete request",
		"post_id", postID,
		"user_id", principal.User.ID)

	if err := h.postService.Delete(r.Context(), principal.User, postID); err != nil {
		h.logger.Error("Post handler: delete failed",
			"post_id", postID,
			"user_id", principal.User.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByOwner returns all posts of a user. Reads are public.
// GET /api/v1/users/{id}/posts
func (h *Post) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, model.NewErrInvalidArgument("id"))
		return
	}

	posts, err := h.postService.ListByOwner(r.Context(), ownerID)
	if err != nil {
		handleError(w, err)
		return
	}

	responses := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, toPostResponse(post))
	}

	writeJSON(w, http.StatusOK, responses)
}
