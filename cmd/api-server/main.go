package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewhub/database"
	"reviewhub/internal/authz"
	"reviewhub/internal/cache"
	"reviewhub/internal/config"
	"reviewhub/internal/logging"
	"reviewhub/internal/microservices/http-api/handler"
	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/microservices/http-api/service"
	"reviewhub/internal/validators"
)

func main() {
	// 1. config and logging
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := validators.RegisterBindingValidators(); err != nil {
		log.Fatalf("could not register validators: %v", err)
	}

	// 2. database
	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close(db)
	if err := database.Migrate(db, logger); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// 3. rating cache (optional) and permissions
	var ratingCache service.RatingCache
	rc, err := cache.NewRatingCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheExpiry())
	switch {
	case err != nil:
		logger.Warn("Redis unavailable, rating cache disabled", "error", err)
	case rc != nil:
		defer rc.Close()
		ratingCache = rc
		logger.Info("Rating cache enabled", "ttl", cfg.CacheExpiry())
	}

	perms, err := authz.NewEnforcer(cfg.AuthzPolicyPath)
	if err != nil {
		log.Fatalf("authz: %v", err)
	}

	// 4. repositories and services
	userRepo := repository.NewUserRepository(db)
	titleRepo := repository.NewTitleRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, service.NewLogMailer(logger), cfg)
	userService := service.NewUserService(userRepo, reviewRepo, titleRepo, ratingCache, logger)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, ratingCache, logger)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, perms, ratingCache, logger)
	commentService := service.NewCommentService(commentRepo, reviewRepo, perms)

	// 5. router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	handler.NewHealthHandler(sqlDB).RegisterRoutes(r)
	if cfg.PrometheusEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	guards := handler.Guards{
		Authenticate: middleware.AuthMiddleware(authService, userRepo),
		Perms:        perms,
	}

	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewUserHandler(userService).RegisterRoutes(api, guards)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api, guards)
	handler.NewGenreHandler(genreService).RegisterRoutes(api, guards)
	handler.NewTitleHandler(titleService).RegisterRoutes(api, guards)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, guards)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, guards)

	// 6. serve until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepLimiter(ctx, limiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           middleware.TrimTrailingSlash(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// sweepLimiter drops idle client limiters once a minute.
func sweepLimiter(ctx context.Context, l *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
