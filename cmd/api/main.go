package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ajakgroup/pqtrack/internal/config"
	"github.com/ajakgroup/pqtrack/internal/database"
	"github.com/ajakgroup/pqtrack/internal/handlers"
	"github.com/ajakgroup/pqtrack/internal/models"
	"github.com/ajakgroup/pqtrack/internal/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	if err := db.AutoMigrate(&models.PQRecord{}); err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Initialize file storage. Without a bucket the app still runs; the
	// upload endpoints respond 503.
	var files *storage.Service
	if cfg.Storage.Bucket == "" {
		log.Println("⚠️ GCS_BUCKET not set, file uploads disabled")
	} else {
		files, err = storage.New(context.Background(), storage.Config{
			Bucket:    cfg.Storage.Bucket,
			ProjectID: cfg.Storage.ProjectID,
			KeyFile:   cfg.Storage.KeyFile,
		})
		if err != nil {
			log.Printf("⚠️ File storage unavailable: %v", err)
			files = nil
		}
	}

	// 5. Set up HTTP router
	router := handlers.NewRouter(db, files, cfg.FrontendDir)

	// 6. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 PQ Tracker server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Server shutdown error: %v", err)
	}

	if files != nil {
		if err := files.Close(); err != nil {
			log.Printf("⚠️ Storage client close error: %v", err)
		}
	}

	if err := db.Close(); err != nil {
		log.Printf("⚠️ Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
