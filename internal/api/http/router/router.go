// Package router wires handlers and middleware into the HTTP route tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fedblog/blog-server/internal/api/http/handler"
	"github.com/fedblog/blog-server/internal/api/http/middleware"
	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
)

// Router assembles the HTTP route tree for the blog API.
type Router struct {
	identityService handler.IdentityService
	postService     handler.PostService
	commentService  handler.CommentService
	verifier        model.TokenVerifier
	resolver        middleware.PrincipalResolver
	contextManager  model.ContextManager
	rateLimit       *middleware.RateLimit
	logger          *logger.Logger
}

// New creates a new Router instance.
func New(
	identityService handler.IdentityService,
	postService handler.PostService,
	commentService handler.CommentService,
	verifier model.TokenVerifier,
	resolver middleware.PrincipalResolver,
	contextManager model.ContextManager,
	rateLimit *middleware.RateLimit,
	logger *logger.Logger,
) *Router {
	return &Router{
		identityService: identityService,
		postService:     postService,
		commentService:  commentService,
		verifier:        verifier,
		resolver:        resolver,
		contextManager:  contextManager,
		rateLimit:       rateLimit,
		logger:          logger,
	}
}

// Register builds the route tree with logging on every route, rate limiting
// on credential endpoints and bearer authentication on mutating routes.
// Reads stay public.
func (rt *Router) Register() http.Handler {
	logging := middleware.NewLogging(rt.logger)
	authenticate := middleware.NewAuthenticate(rt.verifier, rt.resolver, rt.contextManager, rt.logger)

	identityHandler := handler.NewIdentity(rt.identityService, rt.logger)
	postHandler := handler.NewPost(rt.postService, rt.contextManager, rt.logger)
	commentHandler := handler.NewComment(rt.commentService, rt.contextManager, rt.logger)

	r := chi.NewRouter()
	r.Use(logging.Handle)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(rt.rateLimit.Handle)
				r.Post("/user", identityHandler.SignUp)
				r.Post("/login", identityHandler.Login)
				r.Post("/reset-password", identityHandler.ResetPassword)
			})
			r.With(authenticate.Handle).Post("/logout", identityHandler.Logout)

			r.Get("/{id}/posts", postHandler.ListByOwner)
		})

		r.Route("/posts", func(r chi.Router) {
			r.With(authenticate.Handle).Post("/", postHandler.Create)

			r.Route("/{postID}", func(r chi.Router) {
				r.Get("/", postHandler.View)
				r.With(authenticate.Handle).Put("/", postHandler.Edit)
				r.With(authenticate.Handle).Delete("/", postHandler.Delete)

				r.Route("/comments", func(r chi.Router) {
					r.Get("/", commentHandler.ListByPost)
					r.With(authenticate.Handle).Post("/", commentHandler.Create)
					r.With(authenticate.Handle).Delete("/{commentID}", commentHandler.Delete)
				})
			})
		})
	})

	return r
}
