package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sobilo34/Tyma-server/internal/handler"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/internal/storage"
	"github.com/Sobilo34/Tyma-server/pkg/auth"
	"github.com/Sobilo34/Tyma-server/pkg/db"
	"github.com/Sobilo34/Tyma-server/pkg/identifier"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/metrics"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

func main() {
	godotenv.Load()

	log := logger.NewLogger("tyma-cms")

	conn, err := db.NewConnection(db.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 3306),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Database: getEnv("DB_NAME", "tyma_cms"),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(ctx, conn.DB); err != nil {
		cancel()
		log.Fatalf("failed to ensure schema: %v", err)
	}
	cancel()
	if err := db.NewSchemaGuard(conn.DB).ValidateTables(db.CoreTableSchemas()); err != nil {
		log.Fatalf("schema validation failed: %v", err)
	}

	var store storage.FileStore
	if getEnv("STORAGE_BACKEND", "ftp") == "local" {
		store = storage.NewLocalStore(
			getEnv("LOCAL_STORAGE_DIR", "./uploads"),
			getEnv("MEDIA_BASE_URL", "http://localhost:8080/media"),
		)
	} else {
		store = storage.NewFTPStore(
			getEnv("FTP_HOST", "localhost"),
			getEnv("FTP_PORT", "21"),
			getEnv("FTP_USER", ""),
			getEnv("FTP_PASSWORD", ""),
			getEnv("MEDIA_BASE_URL", ""),
		)
	}
	defer store.Close()

	tokens := auth.NewTokenService(
		getEnv("JWT_SECRET", "change-me"),
		time.Duration(getEnvInt("JWT_TTL_HOURS", 24))*time.Hour,
	)
	validate := validation.NewValidator()
	idgen := identifier.NewGenerator()
	m := metrics.NewMetrics("tyma-cms")

	zoneRepo := repository.NewZoneRepository(conn.DB)
	officialRepo := repository.NewOfficialRepository(conn.DB)
	categoryRepo := repository.NewCategoryRepository(conn.DB)
	newsRepo := repository.NewNewsRepository(conn.DB)
	imageRepo := repository.NewImageRepository(conn.DB)
	contactRepo := repository.NewContactRepository(conn.DB)
	newsletterRepo := repository.NewNewsletterRepository(conn.DB)
	userRepo := repository.NewUserRepository(conn.DB)

	attachments := service.NewAttachmentService(conn.DB, store, log)
	zones := service.NewZoneService(zoneRepo, idgen, log)
	officials := service.NewOfficialService(officialRepo, zoneRepo, imageRepo, attachments, idgen, log)
	categories := service.NewCategoryService(categoryRepo, log)
	news := service.NewNewsService(newsRepo, categoryRepo, officialRepo, imageRepo, attachments, log)
	images := service.NewImageService(imageRepo, attachments, store, log)
	contact := service.NewContactService(contactRepo, validate, log)
	newsletter := service.NewNewsletterService(newsletterRepo, validate, log)
	authSvc := service.NewAuthService(userRepo, tokens, validate, log)

	router := handler.NewRouter(handler.Handlers{
		Zones:      handler.NewZoneHandler(zones, validate, log),
		Officials:  handler.NewOfficialHandler(officials, validate, log),
		News:       handler.NewNewsHandler(news, categories, validate, log),
		Images:     handler.NewImageHandler(images, validate, log),
		Contact:    handler.NewContactHandler(contact, log),
		Newsletter: handler.NewNewsletterHandler(newsletter, log),
		Auth:       handler.NewAuthHandler(authSvc, validate, log),
		Health:     handler.NewHealthHandler(conn.DB, log),
	}, tokens, log, m)

	// Refresh connection pool gauges for Prometheus.
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			m.UpdateDBStats(conn.DB.Stats())
		}
	}()

	server := &http.Server{
		Addr:         ":" + getEnv("SERVER_PORT", "8080"),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
	log.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
