// @title                       Blog API
// @version                     1.0
// @description                 Accounts, posts and image uploads for the blog.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api"
	"github.com/inkwell/blog-api/internal/core/service"
	mongodb "github.com/inkwell/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-api/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-api/internal/infrastructure/http/handlers"
	"github.com/inkwell/blog-api/internal/infrastructure/imaging"
	"github.com/inkwell/blog-api/internal/infrastructure/queue"
	"github.com/inkwell/blog-api/internal/infrastructure/storage"
	"github.com/inkwell/blog-api/internal/pkg/config"
	"github.com/inkwell/blog-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	gcsClient, err := storage.Connect(ctx, storage.Config{Bucket: cfg.Storage.Bucket, CredentialsFile: cfg.Storage.CredentialsFile})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create storage client")
	}
	defer gcsClient.Close()

	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create post indexes")
	}

	bucket := storage.NewBucketStore(gcsClient, cfg.Storage.Bucket)
	sessions := service.NewSessionIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	cleanup := queue.NewDispatcher(cfg.Storage.CleanupWorkers, log.With().Str("component", "draft_cleanup").Logger())

	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(cfg.Auth.BcryptCost), sessions, log)
	postService := service.NewPostService(postRepo, service.PostOptions{EnforceOwnership: cfg.Posts.EnforceOwnership}, log)
	imageService := service.NewImageService(
		bucket,
		imaging.NewWebPEncoder(cfg.Storage.WebPQuality),
		redisdb.NewImageStateStore(rdb),
		cleanup,
		service.ImageOptions{DraftPrefix: cfg.Storage.DraftPrefix, PublishedPrefix: cfg.Storage.PublishedPrefix},
		log,
	)
	cleanup.Start(ctx, imageService)

	e := api.NewRouter(api.RouterConfig{
		ClientURI:                cfg.ClientURI,
		RegistrationRequiresAuth: cfg.Auth.RegistrationRequiresAuth,
		UploadMaxSize:            cfg.Storage.UploadMaxSize,
		LoginRateLimit:           cfg.Auth.LoginRateLimit,
		LoginRateBurst:           cfg.Auth.LoginRateBurst,
	}, api.Services{
		Auth:     authService,
		Posts:    postService,
		Images:   imageService,
		Sessions: sessions,
		Users:    userRepo,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
			"storage": bucket.Ping,
		},
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	shutdown(e)
}

// shutdown drains in-flight requests before the deferred store closes run.
func shutdown(e *echo.Echo) {
	log := logger.Get()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
}
