// @title narrabridge API
// @version 1.0
// @description Dispatches workflow items to the Narratheque document service.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token.
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
	"github.com/jmoiron/sqlx"

	"narrabridge/internal/auth"
	"narrabridge/internal/config"
	"narrabridge/internal/email"
	_ "narrabridge/internal/email/noop"
	_ "narrabridge/internal/email/ses"
	"narrabridge/internal/handler"
	"narrabridge/internal/logging"
	"narrabridge/internal/narratheque"
	"narrabridge/internal/port"
	"narrabridge/internal/repository/postgres"
	"narrabridge/internal/router"
	"narrabridge/internal/service"
	s3storage "narrabridge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.Log.Level))
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Run audit store is optional
	var db *sqlx.DB
	var runRepo port.RunRepository
	if cfg.DB.Enabled {
		db, err = postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		runRepo = postgres.NewRunRepo(db)
	}

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	notifier, err := email.NewNotifier(ctx, &cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email notifier: %w", err)
	}

	// Initialize services
	client := narratheque.NewClient(&cfg.Narratheque)
	dispatchSvc := service.NewDispatchService(client, storage, runRepo, notifier, cfg)
	tokens := auth.NewTokenService(cfg.Auth)

	// Initialize handlers
	dispatchH := handler.NewDispatchHandler(dispatchSvc, cfg.Server.MaxBodyMB)
	runH := handler.NewRunHandler(dispatchSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(tokens, cfg.CORS.AllowedOrigins, dispatchH, runH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (audit=%t, s3=%t, email=%s)",
			cfg.Server.Port, runRepo != nil, storage != nil, cfg.Email.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case s := <-sig:
		log.Printf("Received %s, shutting down", s)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
