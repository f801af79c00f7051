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

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"aiptrack/backend/internal/config"
	"aiptrack/backend/internal/handler"
	"aiptrack/backend/internal/handler/middleware"
	"aiptrack/backend/internal/model"
	"aiptrack/backend/internal/repository"
	"aiptrack/backend/internal/service"
	jwtpkg "aiptrack/backend/pkg/jwt"
	"aiptrack/backend/pkg/logger"
)

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// 1. Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// 3. Sentry error tracking
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			EnableTracing:    cfg.Sentry.SampleRate > 0,
			TracesSampleRate: cfg.Sentry.SampleRate,
		}); err != nil {
			zl.Error("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
			zl.Info("sentry enabled", zap.String("environment", cfg.Sentry.Environment))
		}
	}

	// 4. Connect to PostgreSQL
	db, err := config.NewPostgresDB(cfg.Database.Postgres, zl)
	if err != nil {
		zl.Fatal("failed to connect to postgres", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zl.Fatal("failed to get sql.DB", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	// 5. Auto-migrate if enabled
	if cfg.Database.Postgres.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			zl.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zl.Info("database migration completed")
	}

	// 6. Initialize state store (Redis or in-memory)
	var stateStore repository.StateStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			zl.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		stateStore = repository.NewRedisStateStore(redisClient, "aiptrack:")
		zl.Info("using Redis state store")
	default:
		mem := repository.NewMemoryStateStore()
		go sweepLoop(mem, zl)
		stateStore = mem
		zl.Info("using in-memory state store")
	}

	// 7. Initialize repositories
	userRepo := repository.NewPGUserRepository(db)
	gymRepo := repository.NewPGGymRepository(db)
	memberRepo := repository.NewPGGymRelationshipRepository(db)
	coachRepo := repository.NewPGCoachRelationshipRepository(db)

	// 8. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)

	// 9. Initialize services
	var revoker service.TokenRevoker
	var revocationCheck middleware.RevocationChecker
	if cfg.Auth.RevokeOnLogout {
		revoker = service.NewTokenRevoker(stateStore)
		revocationCheck = revoker
	}
	authService := service.NewAuthService(userRepo, jwtManager, revoker, service.AuthOptions{
		BcryptCost:     cfg.Auth.BcryptCost,
		RevokeOnLogout: cfg.Auth.RevokeOnLogout,
	}, zl)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, zl)
	membershipService := service.NewMembershipService(userRepo, gymRepo, memberRepo, coachRepo, zl)

	// 10. Setup router
	router := handler.SetupRouter(cfg, zl, jwtManager, revocationCheck,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewMembershipHandler(membershipService),
		handler.NewHealthHandler(sqlDB),
	)

	// 11. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 12. Start server with graceful shutdown
	go func() {
		zl.Info("server starting", zap.String("addr", addr), zap.String("api_prefix", cfg.Server.APIPrefix))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		return
	}
	zl.Info("server exited gracefully")
}

func sweepLoop(store *repository.MemoryStateStore, zl *zap.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if n := store.Sweep(); n > 0 {
			zl.Debug("expired state entries removed", zap.Int("count", n))
		}
	}
}
