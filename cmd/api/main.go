package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/auth"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handler"
	"stockroom/internal/image"
	"stockroom/internal/repository"
	"stockroom/internal/router"
	"stockroom/internal/service"
	"stockroom/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// multipartOverhead is allowed on top of the file limits for form fields and boundaries.
const multipartOverhead = 1 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting stockroom API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the record store
	recordStore, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize repositories
	productRepo := repository.NewProductRepository(recordStore, logger)
	categoryRepo := repository.NewCategoryRepository(recordStore, logger)
	vendorRepo := repository.NewVendorRepository(recordStore, logger)
	customerRepo := repository.NewCustomerRepository(recordStore, logger)
	settingsRepo := repository.NewSettingsRepository(recordStore, logger)
	userRepo := repository.NewUserRepository(recordStore, logger)

	// Seed first-start data
	if err := service.SeedCatalog(ctx, categoryRepo, vendorRepo); err != nil {
		return err
	}
	authenticator := auth.NewAuthenticator(userRepo, logger)
	if err := authenticator.SeedAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Initialize image store with S3 and local fallback
	images, fileStore, err := openImageStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Initialize services
	limits := service.UploadLimits{
		ImageMaxBytes: cfg.Upload.ImageMaxBytes,
		CSVMaxBytes:   cfg.Upload.CSVMaxBytes,
	}
	catalogLock := service.NewCatalogLock()
	productService := service.NewProductService(productRepo, categoryRepo, vendorRepo, catalogLock, images, limits, logger)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, catalogLock, logger)
	vendorService := service.NewVendorService(vendorRepo, productRepo, catalogLock, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, images, cfg.Upload.ImageMaxBytes, logger)

	// Initialize HTTP handlers
	sessions := auth.NewSessionManager([]byte(cfg.Auth.SessionSecret), auth.SessionOptions{
		MaxAge: cfg.Auth.SessionMaxAge,
		Secure: cfg.Auth.SessionSecure,
	})
	productBody := max(cfg.Upload.ImageMaxBytes, cfg.Upload.CSVMaxBytes) + multipartOverhead
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authenticator, sessions, logger),
		Products:   handler.NewProductHandler(productService, productBody, logger),
		Categories: handler.NewCatalogHandler(categoryService, "categories", logger),
		Vendors:    handler.NewCatalogHandler(vendorService, "vendors", logger),
		Customers:  handler.NewCustomerHandler(customerService, logger),
		Settings:   handler.NewSettingsHandler(settingsService, cfg.Upload.ImageMaxBytes+multipartOverhead, logger),
	}

	// Initialize router
	mux := router.New(handlers, sessions, router.Options{
		CORSOrigin: cfg.Server.CORSOrigin,
		ProtectAll: cfg.Auth.ProtectAll,
		UploadDir:  fileStore.Dir(),
		URLPrefix:  cfg.Upload.URLPrefix,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// openStore opens the record store selected by STORE_DRIVER. The returned
// func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreBolt:
		s, err := store.OpenBoltStore(cfg.Store.BoltPath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close bolt store")
			}
		}, nil

	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s, err := store.NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to initialize postgres store: %w", err)
		}
		return s, pool.Close, nil

	default:
		logger.Warn().Msg("using in-memory store, data will not survive a restart")
		return store.NewMemoryStore(), func() {}, nil
	}
}

// openImageStore returns the store used for uploads and the local file store
// backing it. With S3 enabled, uploads go to S3 and fall back to local disk.
func openImageStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (image.Store, *image.FileStore, error) {
	fileStore, err := image.NewFileStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, logger)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.S3.Enabled {
		logger.Info().Str("dir", cfg.Upload.Dir).Msg("using local file system for images (S3 disabled)")
		return fileStore, fileStore, nil
	}

	s3Store, err := image.NewS3Store(ctx, image.S3Options{
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Prefix:    cfg.S3.Prefix,
		PublicURL: cfg.S3.PublicURL,
	}, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 image store, falling back to local file system only")
		return fileStore, fileStore, nil
	}

	return image.NewFallbackStore(s3Store, fileStore, logger), fileStore, nil
}
