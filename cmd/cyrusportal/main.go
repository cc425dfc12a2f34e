package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	sqliteadapter "github.com/Arthurelkuri928/cyrusdefinitiva/internal/adapter/driven/sqlite"
	httphandler "github.com/Arthurelkuri928/cyrusdefinitiva/internal/adapter/driving/http"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/application"
	"github.com/Arthurelkuri928/cyrusdefinitiva/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"token_ttl", cfg.TokenTTL,
		"encryption_key_set", cfg.HasSecretKey(),
	)
	if !cfg.HasSecretKey() {
		slog.Warn("CYRUS_SECRET_KEY not set, credential disclosure disabled until configured")
	}
	if cfg.AdminToken == "" {
		slog.Warn("CYRUS_ADMIN_TOKEN not set, admin surface disabled")
	}

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	toolStore := sqliteadapter.NewToolRepo(db)
	favoriteStore := sqliteadapter.NewFavoriteRepo(db)
	secretStore := sqliteadapter.NewSecretRepo(db, cfg.SecretKey)
	disclosureLog := sqliteadapter.NewAuditRepo(db)
	memberStore := sqliteadapter.NewMemberRepo(db)

	// 6. Wire application services.
	authSvc := application.NewAuthService(memberStore, cfg.JWTSecret, cfg.TokenTTL)
	catalogSvc := application.NewCatalogService(toolStore, favoriteStore)
	favoriteSvc := application.NewFavoriteService(favoriteStore)
	vaultSvc := application.NewVaultService(toolStore, secretStore, disclosureLog, cfg.StoreTimeout)

	// 7. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(
		catalogSvc,
		favoriteSvc,
		vaultSvc,
		authSvc,
		toolStore,
		secretStore,
		cfg.AdminToken,
		slog.Default(),
	)
	handler := httphandler.NewServeMux(apiHandler, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("cyrusportal started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
