package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	apicontext "github.com/fedblog/blog-server/internal/api/http/context"
	"github.com/fedblog/blog-server/internal/api/http/middleware"
	"github.com/fedblog/blog-server/internal/api/http/router"
	httpServer "github.com/fedblog/blog-server/internal/api/http/server"
	"github.com/fedblog/blog-server/internal/auth"
	"github.com/fedblog/blog-server/internal/config"
	"github.com/fedblog/blog-server/internal/identity/keycloak"
	"github.com/fedblog/blog-server/internal/logger"
	"github.com/fedblog/blog-server/internal/model"
	"github.com/fedblog/blog-server/internal/password"
	"github.com/fedblog/blog-server/internal/repository/postgres"
	"github.com/fedblog/blog-server/internal/sanitize"
	"github.com/fedblog/blog-server/internal/server"
	"github.com/fedblog/blog-server/internal/service"
	"github.com/fedblog/blog-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	identityProvider := keycloak.New(cfg.Keycloak.BaseURL, keycloak.Config{
		Realm:         cfg.Keycloak.Realm,
		ClientID:      cfg.Keycloak.ClientID,
		ClientSecret:  cfg.Keycloak.ClientSecret,
		AdminUser:     cfg.Keycloak.AdminUser,
		AdminPassword: cfg.Keycloak.AdminPassword,
		AdminRealm:    cfg.Keycloak.AdminRealm,
	}, logger)

	encoder := password.NewBcryptEncoder()
	sanitizer := sanitize.NewContent()

	identityService := service.NewIdentity(userRepo, identityProvider, encoder, logger)
	postService := service.NewPost(postRepo, userRepo, sanitizer, logger)
	commentService := service.NewComment(commentRepo, postRepo, userRepo, sanitizer, logger)

	verifier, err := token.NewVerifier(cfg.JWT.PublicKeyPEM, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal("failed to initialize token verifier", "error", err)
	}
	resolver := auth.NewResolver(userRepo, logger)
	ctxMgr := apicontext.NewManager()

	rateLimit := middleware.NewRateLimit(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst, logger)
	defer rateLimit.Stop()

	r := router.New(identityService, postService, commentService, verifier, resolver, ctxMgr, rateLimit, logger)
	apiServer := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
