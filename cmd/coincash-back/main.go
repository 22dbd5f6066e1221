// File: cmd/coincash-back/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lolmatina/coincash-back/internal/config"
	"github.com/lolmatina/coincash-back/internal/domain/interfaces"
	httpHandler "github.com/lolmatina/coincash-back/internal/handler/http"
	"github.com/lolmatina/coincash-back/internal/infrastructure/database"
	"github.com/lolmatina/coincash-back/internal/infrastructure/notification"
	"github.com/lolmatina/coincash-back/internal/infrastructure/ratelimit"
	"github.com/lolmatina/coincash-back/internal/infrastructure/security"
	"github.com/lolmatina/coincash-back/internal/infrastructure/storage"
	"github.com/lolmatina/coincash-back/internal/service"
	"github.com/lolmatina/coincash-back/internal/utils/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx := context.Background()

	if cfg.Database.Type == "direct" && cfg.Database.AutoMigrate {
		log.Info("running database migrations")
		migrationURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			cfg.Database.User, cfg.Database.Password, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		m, err := migrate.New("file://migrations", migrationURL)
		if err != nil {
			log.Fatal("failed to create migration instance", zap.Error(err))
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("failed to apply migrations", zap.Error(err))
		}
		log.Info("migrations applied successfully")
	}

	db, err := database.New(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize database backend", zap.Error(err))
	}
	defer db.Close()
	log.Info("database backend ready", zap.String("type", cfg.Database.Type))

	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize storage backend", zap.Error(err))
	}
	log.Info("storage backend ready", zap.String("type", cfg.Storage.Type))

	var limiter interfaces.RateLimiter
	switch cfg.Auth.RateLimit.Store {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.Auth.RateLimit.Limit, cfg.Auth.RateLimit.Window)
	case "memory":
		limiter = ratelimit.NewMemoryLimiter(cfg.Auth.RateLimit.Limit, cfg.Auth.RateLimit.Window)
	default:
		log.Fatal("unknown rate limit store", zap.String("store", cfg.Auth.RateLimit.Store))
	}

	passwordService := security.NewBcryptPasswordService()
	jwtService := security.NewJWTService(cfg.JWT)
	mailer := notification.NewSMTPMailer(cfg.SMTP, cfg.Frontend.URL, log.Named("mailer"))
	telegramBot := notification.NewTelegramBot(cfg.Telegram.BotToken, db, log.Named("telegram"))

	authService := service.NewAuthService(
		db,
		passwordService,
		mailer,
		limiter,
		jwtService,
		cfg.Auth.VerificationCodeTTL,
		cfg.Auth.ResetTokenTTL,
		log.Named("auth_service"),
	)
	userService := service.NewUserService(db, fileStorage, telegramBot, cfg.Storage.Bucket, log.Named("user_service"))
	managerService := service.NewManagerService(db, mailer, log.Named("manager_service"))

	router := httpHandler.SetupRouter(
		authService,
		userService,
		managerService,
		db,
		jwtService,
		cfg,
		log,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited properly")
}
