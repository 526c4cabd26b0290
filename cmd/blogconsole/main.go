// Package main is the entry point for the blog admin console. It loads
// configuration, connects to services, wires the category tree controller
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"blogconsole/internal/apiclient"
	"blogconsole/internal/auth"
	"blogconsole/internal/cache"
	"blogconsole/internal/categorytree"
	"blogconsole/internal/config"
	"blogconsole/internal/database"
	"blogconsole/internal/handlers"
	"blogconsole/internal/middleware"
	"blogconsole/internal/router"
	"blogconsole/internal/session"
	"blogconsole/internal/storage"
	"blogconsole/internal/store"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	addr := pflag.String("addr", "", "listen address, overrides HOST and PORT")
	pflag.Parse()

	if err := run(*configPath, *addr); err != nil {
		slog.Error("blogconsole stopped", "error", err)
		os.Exit(1)
	}
}

func run(configPath, addrOverride string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	setupLogger(cfg)

	addr := cfg.Addr()
	if addrOverride != "" {
		addr = addrOverride
	}
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", addr,
		"gateway", cfg.GatewayMode,
	)

	client, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithServiceToken(cfg.APIServiceToken),
	)
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	// PostgreSQL holds the category table in database mode and the reorder
	// log in both modes.
	db, err := openDatabase(cfg)
	if err != nil {
		if cfg.GatewayMode == config.GatewayDatabase {
			return err
		}
		slog.Warn("postgres unavailable, reorder log disabled", "error", err)
	}
	if db != nil {
		defer db.Close()
	}

	// Valkey holds sessions and the cached category tree.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		return fmt.Errorf("connect valkey: %w", err)
	}
	defer valkeyClient.Close()

	var (
		fetcher categorytree.Fetcher
		gateway categorytree.Gateway
		backend handlers.CategoryBackend
	)
	switch cfg.GatewayMode {
	case config.GatewayDatabase:
		categories := store.NewCategoryStore(db)
		fetcher, gateway, backend = categories, categories, categories
	default:
		remote := apiclient.NewCategoryGateway(client)
		fetcher, gateway, backend = remote, remote, client
	}
	treeCache := cache.NewTreeCache(valkeyClient, fetcher, cfg.TreeCacheTTL)

	var (
		opts    []categorytree.Option
		history handlers.ReorderHistory
	)
	if db != nil {
		reorderLog := store.NewReorderLogStore(db)
		opts = append(opts, categorytree.WithNotifier(reorderLog.Notifier()))
		history = reorderLog
	}
	ctrl := categorytree.NewController(treeCache, gateway, opts...)

	// A failed first load is not fatal; the tree endpoint retries it.
	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.APITimeout)
	if _, err := ctrl.Load(loadCtx); err != nil {
		slog.Warn("initial category tree load failed", "error", err)
	}
	cancel()

	verifier, err := auth.NewJWTVerifier([]byte(cfg.JWTSecret), cfg.JWTIssuer)
	if err != nil {
		return fmt.Errorf("create token verifier: %w", err)
	}

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	var images handlers.ImageStore
	if cfg.S3Enabled() {
		storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return fmt.Errorf("create s3 storage: %w", err)
		}
		if storageClient != nil {
			images = storageClient
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		}
	} else {
		slog.Warn("s3 storage not configured, uploads disabled")
	}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	r := router.New(router.Options{
		Sessions:      sessionStore,
		SecureCookies: secureCookies,
		LoginLimiter:  loginLimiter,
	}, router.Handlers{
		Auth:       handlers.NewAuth(sessionStore, verifier),
		Categories: handlers.NewCategories(ctrl, backend, history),
		Posts:      handlers.NewPosts(client),
		Tags:       handlers.NewTags(client),
		Users:      handlers.NewUsers(client),
		Comments:   handlers.NewComments(client),
		Uploads:    handlers.NewUploads(images),
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.APITimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// setupLogger installs the default slog logger. Development gets debug
// level text output; everything else gets info level in the configured
// format.
func setupLogger(cfg *config.Config) {
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openDatabase connects, migrates and, in development, seeds PostgreSQL.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() && cfg.GatewayMode == config.GatewayDatabase {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.Seed(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}
	return db, nil
}
