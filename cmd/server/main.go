package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	businessapp "github.com/sistemaventa/backend/internal/application/business"
	catalogapp "github.com/sistemaventa/backend/internal/application/catalog"
	"github.com/sistemaventa/backend/internal/application/gateway"
	identityapp "github.com/sistemaventa/backend/internal/application/identity"
	"github.com/sistemaventa/backend/internal/domain/business"
	"github.com/sistemaventa/backend/internal/domain/catalog"
	"github.com/sistemaventa/backend/internal/domain/identity"
	"github.com/sistemaventa/backend/internal/domain/settings"
	"github.com/sistemaventa/backend/internal/infrastructure/config"
	"github.com/sistemaventa/backend/internal/infrastructure/logger"
	"github.com/sistemaventa/backend/internal/infrastructure/notification"
	"github.com/sistemaventa/backend/internal/infrastructure/persistence"
	"github.com/sistemaventa/backend/internal/infrastructure/storage"
	"github.com/sistemaventa/backend/internal/interfaces/http/handler"
	"github.com/sistemaventa/backend/internal/interfaces/http/middleware"
	"github.com/sistemaventa/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting sistemaventa backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	accountRepo := persistence.NewGormRepository[identity.Account](db.DB)
	roleRepo := persistence.NewGormRepository[identity.Role](db.DB)
	profileRepo := persistence.NewGormRepository[business.Profile](db.DB)
	categoryRepo := persistence.NewGormRepository[catalog.Category](db.DB)
	settingsRepo := persistence.NewGormRepositoryOrdered[settings.Configuration](db.DB, "resource, property")

	// Select the blob storage backend
	var blobs gateway.BlobStorage
	switch cfg.Storage.Backend {
	case "s3":
		s3Store, err := storage.NewS3Storage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize s3 storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		blobs = s3Store
	case "stub":
		blobs = storage.NewStubStorage()
	default:
		blobs = storage.NewCloudinaryStorage(settingsRepo, log)
	}
	log.Info("Blob storage ready", zap.String("backend", cfg.Storage.Backend))

	// Outbound gateways
	mail := notification.NewSMTPSender(settingsRepo, log)
	templates := notification.NewHTTPTemplateFetcher(cfg.HTTP.TemplateTimeout)

	// Initialize application services
	accountService := identityapp.NewAccountService(accountRepo, blobs, mail, templates, log)
	roleService := identityapp.NewRoleService(roleRepo)
	profileService := businessapp.NewProfileService(profileRepo, blobs, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)

	// Initialize HTTP handlers
	accountHandler := handler.NewAccountHandler(accountService, roleService, cfg.MailTemplates)
	businessHandler := handler.NewBusinessHandler(profileService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(accountHandler).
		Register(businessHandler).
		Register(categoryHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
