// File: app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-atm/config"
	"go-atm/handler"
	"go-atm/logger"
	"go-atm/router"
	"go-atm/service"

	"github.com/shopspring/decimal"
)

const sessionReapInterval = time.Minute

// App holds the wired core and its HTTP surface.
type App struct {
	Directory *service.AccountDirectory
	Tokens    *service.TokenService
	Router    http.Handler
}

// New builds the directory from cfg, seeds it and wires the handlers.
func New(cfg *config.Config) (*App, error) {
	withdrawalLimit, err := decimal.NewFromString(cfg.Limits.DailyWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("invalid daily withdrawal limit %q: %w", cfg.Limits.DailyWithdrawal, err)
	}
	depositLimit, err := decimal.NewFromString(cfg.Limits.DailyDeposit)
	if err != nil {
		return nil, fmt.Errorf("invalid daily deposit limit %q: %w", cfg.Limits.DailyDeposit, err)
	}

	directory := service.NewInMemoryDirectory(service.DirectoryConfig{
		DailyWithdrawalLimit: withdrawalLimit,
		DailyDepositLimit:    depositLimit,
		AdminSecret:          cfg.Admin.Secret,
		SessionTTL:           cfg.JWT.TTL,
		Clock:                time.Now,
	})

	for _, seed := range cfg.SeedAccounts {
		balance, err := decimal.NewFromString(seed.Balance)
		if err != nil {
			return nil, fmt.Errorf("invalid balance for seed account %s: %w", logger.MaskCard(seed.CardNumber), err)
		}
		if _, err := directory.ProvisionAccount(seed.CardNumber, seed.PIN, balance); err != nil {
			return nil, fmt.Errorf("could not seed account %s: %w", logger.MaskCard(seed.CardNumber), err)
		}
	}

	tokens := service.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.TTL, time.Now)

	// --- Wiring All Layers Together ---
	r := router.NewRouter(router.Handlers{
		Session:     handler.NewSessionHandler(directory, tokens),
		Account:     handler.NewAccountHandler(directory),
		Transaction: handler.NewTransactionHandler(),
		Admin:       handler.NewAdminHandler(directory),
		Auth:        handler.AuthMiddleware(tokens, directory),
		AdminOnly:   handler.AdminMiddleware(directory),
	})

	return &App{Directory: directory, Tokens: tokens, Router: r}, nil
}

// reapSessions drops expired sessions every interval until ctx is done.
func reapSessions(ctx context.Context, directory *service.AccountDirectory, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			directory.ReapExpiredSessions()
		}
	}
}

func Run(configPath string) {
	logger.Init()
	logger.Log.Info("Logger initialized")

	if err := config.LoadConfig(configPath); err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.SetLevel(config.AppConfig.Log.Level)
	logger.Log.Info("Configuration loaded successfully")

	application, err := New(&config.AppConfig)
	if err != nil {
		logger.Log.Fatalf("Error initializing application: %v", err)
	}
	logger.Log.WithField("accounts", len(config.AppConfig.SeedAccounts)).Info("Account directory seeded")

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           application.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	reapCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	go reapSessions(reapCtx, application.Directory, sessionReapInterval)

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
