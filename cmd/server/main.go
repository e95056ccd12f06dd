// Package main is the entry point for the TeamPulse API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TeamPulse-Labs/teampulse-api/internal/config"
	"github.com/TeamPulse-Labs/teampulse-api/internal/database"
	"github.com/TeamPulse-Labs/teampulse-api/internal/router"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/coach"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/storage"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/webhook"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/worker"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("🚀 TeamPulse API %s starting...", Version)

	// Step 1: Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("📋 Config loaded: port=%s, workers=%d, gin_mode=%s", cfg.Port, cfg.WorkerCount, cfg.GinMode)

	os.Setenv("GIN_MODE", cfg.GinMode)

	// Step 2: Connect to Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("✅ Database connected")

	// Run migrations
	if err := db.RunMigrations("migrations"); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	// Step 3: Create Services
	catalog := strengths.NewCatalog()
	parser := strengths.NewParser(catalog)
	log.Printf("✅ Strengths parser ready (%d themes)", len(catalog.Themes()))

	var store storage.Storage
	if cfg.StorageEnabled() {
		store, err = storage.NewS3Storage(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to object storage: %v", err)
		}
		log.Printf("✅ Object storage connected (bucket: %s)", cfg.S3BucketName)
	} else {
		log.Println("⚠️  Object storage not configured (set S3_ENDPOINT to enable PDF uploads)")
	}

	coachSvc := coach.New(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	if cfg.OpenRouterAPIKey != "" {
		log.Println("✅ AI coach enabled (OpenRouter)")
	} else {
		log.Println("⚠️  AI coach disabled (set OPENROUTER_API_KEY to enable)")
	}

	// Webhook notification service (TP-41)
	webhookService := webhook.New(db)
	log.Println("✅ Webhook notification service initialized")

	// Step 4: Create and Start Worker Pool
	wp := worker.NewPool(cfg.WorkerCount, cfg.JobQueueSize, db, parser, store, webhookService)
	wp.Start()
	defer wp.Stop()

	// Log admin API key status
	if cfg.AdminAPIKey != "" {
		log.Println("✅ Admin API key configured (API key creation protected)")
	} else {
		log.Println("⚠️  No admin API key set (API key creation is open — set ADMIN_API_KEY in production)")
	}

	// Step 5: Setup HTTP Router
	r := router.Setup(db, wp, parser, store, coachSvc, webhookService,
		cfg.JWTSecret, cfg.AdminAPIKey, cfg.IncludeRawText, cfg.DefaultRateLimit, cfg.AllowedOrigins)

	// Step 6: Start the HTTP Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server listening on http://localhost:%s", cfg.Port)
		log.Printf("📖 Health check: http://localhost:%s/api/v1/health", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Step 7: Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("🛑 Received signal %v, shutting down gracefully...", sig)

	// Signal webhook service to stop pending deliveries
	webhookService.Shutdown()
	log.Println("⏳ Webhook deliveries signaled to stop")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Server forced to shutdown: %v", err)
	}

	log.Println("👋 Server stopped. Goodbye!")
}
