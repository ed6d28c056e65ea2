package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brookfield/admissions/internal/auth"
	"github.com/brookfield/admissions/internal/config"
	"github.com/brookfield/admissions/internal/domain/application"
	"github.com/brookfield/admissions/internal/domain/audit"
	"github.com/brookfield/admissions/internal/domain/booking"
	"github.com/brookfield/admissions/internal/domain/slot"
	"github.com/brookfield/admissions/internal/notify"
	"github.com/brookfield/admissions/internal/repository"
	"github.com/brookfield/admissions/internal/sqlite"
	"github.com/brookfield/admissions/internal/transport"
	"github.com/google/uuid"
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

	accountRepo := sqlite.NewAccountRepository(db)
	applicationRepo := sqlite.NewApplicationRepository(db)
	slotRepo := sqlite.NewSlotRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	if err := seedAdmin(context.Background(), accountRepo, cfg.Admin); err != nil {
		logger.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	notifier, err := buildNotifier(context.Background(), cfg.Notify, accountRepo, logger)
	if err != nil {
		logger.Error("failed to configure notifications", "error", err)
		os.Exit(1)
	}

	auditSvc := audit.NewService(auditRepo, logger)
	applicationSvc := application.NewService(applicationRepo, notifier, auditSvc, logger)
	slotSvc := slot.NewService(slotRepo, applicationRepo, applicationSvc, auditSvc, logger)
	bookingSvc := booking.NewService(slotRepo, applicationRepo, applicationSvc, auditSvc, logger)

	gate := transport.NewAccountGate(accountRepo)
	router := transport.NewServer(
		applicationSvc,
		slotSvc,
		bookingSvc,
		auditSvc,
		transport.AuthMiddleware(gate),
		logger,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func buildNotifier(ctx context.Context, cfg config.NotifyConfig, accounts repository.AccountRepository, logger *slog.Logger) (application.Notifier, error) {
	if !cfg.Enabled {
		return notify.NewLogDispatcher(logger), nil
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("notify.sender is required when notifications are enabled")
	}
	return notify.NewSESDispatcher(ctx, cfg.Region, cfg.Sender, accounts, logger)
}

// seedAdmin provisions the configured staff account if it doesn't exist yet.
func seedAdmin(ctx context.Context, accounts repository.AccountRepository, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Token == "" {
		return nil
	}

	hash := transport.HashToken(cfg.Token)
	if _, err := accounts.GetByTokenHash(ctx, hash); err == nil {
		return nil
	}

	err := accounts.Create(ctx, hash, &auth.Account{
		ID:    uuid.NewString(),
		Email: cfg.Email,
		Name:  "Admissions Staff",
		Admin: true,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
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
