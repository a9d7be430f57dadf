package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ieltslab/practice-service/internal/cache"
	"github.com/ieltslab/practice-service/internal/catalog"
	"github.com/ieltslab/practice-service/internal/config"
	"github.com/ieltslab/practice-service/internal/explain"
	"github.com/ieltslab/practice-service/internal/handlers"
	"github.com/ieltslab/practice-service/internal/identity"
	"github.com/ieltslab/practice-service/internal/models"
	"github.com/ieltslab/practice-service/internal/repositories/postgres"
	"github.com/ieltslab/practice-service/internal/services"
	"github.com/ieltslab/practice-service/internal/session"
	"github.com/ieltslab/practice-service/internal/utils"
	"github.com/ieltslab/practice-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserStat{}, &models.TestResult{}); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	repo := postgres.NewRepository(db)

	// Explanation caching degrades gracefully when redis is unreachable
	var cacheSvc cache.CacheService
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, explanation caching disabled", "error", err)
	} else {
		cacheSvc = cache.NewRedisCache(redisClient, slogger)
		defer redisClient.Close()
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	catalogStore := catalog.NewStore(catalog.SeedCatalogs()...)
	sessionManager := session.NewManager()

	gemini := explain.NewGeminiClient(explain.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	pipeline := explain.NewPipeline(gemini, cacheSvc, slogger,
		time.Duration(cfg.ExplainTimeoutSeconds)*time.Second)

	notifier := identity.NewNotifier()
	notifier.Subscribe(func(event identity.AuthEvent, id identity.Identity) {
		logger.Info("auth state changed", "event", string(event), "user_id", id.UserID)
	})

	provider := identity.NewPasswordProvider(repo.Users(), notifier)
	var verifier identity.Verifier = provider
	if cfg.UseCasdoor() {
		logger.Info("using casdoor token verification", "endpoint", cfg.CasdoorEndpoint)
		verifier = identity.NewCasdoorVerifier(identity.CasdoorConfig{
			Endpoint:     cfg.CasdoorEndpoint,
			ClientID:     cfg.CasdoorClientID,
			ClientSecret: cfg.CasdoorClientSecret,
			Certificate:  cfg.CasdoorCertificate,
			Organization: cfg.CasdoorOrganization,
			Application:  cfg.CasdoorApplication,
		})
	}

	validate := utils.NewValidator()

	serviceManager := services.NewServiceManager(
		services.NewAuthService(provider, verifier, repo, slogger, validate),
		services.NewCatalogService(catalogStore, slogger),
		services.NewSessionService(catalogStore, sessionManager, repo, publisher, pipeline, slogger),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
