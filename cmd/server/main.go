package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mlenz/tapspace/internal/config"
	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/mlenz/tapspace/internal/httpapi"
	"github.com/mlenz/tapspace/internal/restrict"
	"github.com/mlenz/tapspace/internal/sqlite"
	"github.com/mlenz/tapspace/internal/tagio"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if cfg.Auth.JWTSecret == "" {
		logger.Error("TAPSPACE_JWT_SECRET (or auth.jwt_secret) is required")
		os.Exit(1)
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	spaceRepo := sqlite.NewSpaceRepository(db)
	intervalRepo := sqlite.NewIntervalRepository(db)
	credentialRepo := sqlite.NewCredentialRepository(db)
	settingRepo := sqlite.NewSettingRepository(db)

	ctx := context.Background()

	identitySvc := identity.NewService(credentialRepo, logger)
	if err := identitySvc.Seed(ctx, configuredCredentials(cfg)); err != nil {
		logger.Error("failed to seed credentials", "error", err)
		os.Exit(1)
	}

	spaceSvc := space.NewService(spaceRepo, settingRepo, logger)
	if err := spaceSvc.EnsureDefault(ctx); err != nil {
		logger.Error("failed to ensure default space", "error", err)
		os.Exit(1)
	}

	gateway := restrict.NewSimulated(true, logger)
	if err := gateway.RequestAuthorization(ctx); err != nil {
		logger.Warn("restriction authorization failed", "error", err)
	}

	tagSim := tagio.NewSimulator(cfg.Tag.SimulatePayload, cfg.Tag.SimulateDelay(), logger)

	engine := attendance.NewEngine(intervalRepo, spaceSvc, gateway, logger)
	reporter := attendance.NewReporter(intervalRepo, logger)

	handler := httpapi.New(httpapi.Deps{
		Identities: identitySvc,
		Spaces:     spaceSvc,
		Engine:     engine,
		Reports:    reporter,
		Gateway:    gateway,
		TagWriter:  tagSim,
		Tokens:     httpapi.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime()),
		Logger:     logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func configuredCredentials(cfg config.Config) []identity.Credential {
	var creds []identity.Credential
	for _, c := range cfg.Auth.Moderators {
		creds = append(creds, identity.Credential{
			Username: c.Username,
			Password: c.Password,
			Role:     identity.RoleModerator,
		})
	}
	for _, c := range cfg.Auth.Students {
		creds = append(creds, identity.Credential{
			Username: c.Username,
			Password: c.Password,
			Role:     identity.RoleStudent,
		})
	}
	return creds
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
