// File: internal/handler/http/router.go
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lolmatina/coincash-back/internal/config"
	"github.com/lolmatina/coincash-back/internal/domain/repository"
	"github.com/lolmatina/coincash-back/internal/handler/http/middleware"
	"github.com/lolmatina/coincash-back/internal/service"
)

// SetupRouter wires middleware, handlers and routes.
func SetupRouter(
	authService *service.AuthService,
	userService *service.UserService,
	managerService *service.ManagerService,
	db repository.Database,
	tokenParser middleware.TokenParser,
	cfg *config.Config,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.CorsMiddleware())
	if cfg.Metrics.Enabled {
		router.Use(middleware.MetricsMiddleware())
	}

	authHandler := NewAuthHandler(authService, logger.Named("auth_handler"))
	userHandler := NewUserHandler(userService, logger.Named("user_handler"))
	managerHandler := NewManagerHandler(managerService, logger.Named("manager_handler"))
	healthHandler := NewHealthHandler(db, logger.Named("health_handler"))

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.GET("/health", healthHandler.Health)
	router.GET("/readiness", healthHandler.Readiness)

	// Locally stored uploads are served straight from disk.
	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("", authHandler.Login)
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/email/send", authHandler.SendVerification)
			auth.POST("/email/verify", authHandler.VerifyEmail)
			auth.POST("/password-reset/request", authHandler.RequestPasswordReset)
			auth.POST("/password-reset/confirm", authHandler.ResetPassword)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(tokenParser, logger))
		{
			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.GetMe)
				users.GET("/:id", userHandler.GetUser)
				users.POST("/documents", userHandler.SubmitDocuments)
			}

			managers := protected.Group("/managers")
			{
				managers.POST("", managerHandler.CreateManager)
				managers.GET("", managerHandler.ListManagers)
				managers.GET("/queue", managerHandler.ModerationQueue)
				managers.GET("/submissions", managerHandler.UsersWithDocuments)
				managers.POST("/documents/:id/approve", managerHandler.ApproveDocuments)
				managers.POST("/documents/:id/deny", managerHandler.DenyDocuments)
			}
		}
	}

	return router
}
