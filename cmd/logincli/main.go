// Package main is the entry point for the Secure Login System console tool.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/secure-login/system/config"
	"github.com/secure-login/system/internal/application/usecase/auth"
	"github.com/secure-login/system/internal/infra/console"
	"github.com/secure-login/system/internal/infra/db"
	"github.com/secure-login/system/internal/integration/adapters"
	"github.com/secure-login/system/internal/integration/persistence"
	"github.com/secure-login/system/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	database, err := db.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if !database.HealthCheck() {
		slog.Error("Database health check failed")
		os.Exit(1)
	}

	// Run database migrations
	if err := database.AutoMigrate(&model.CredentialModel{}); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// Create adapters
	hasher, err := adapters.NewPasswordHasher(cfg.Security.HashScheme)
	if err != nil {
		slog.Error("Invalid hash scheme", "error", err)
		os.Exit(1)
	}
	auditSink, err := adapters.NewAuditSink(cfg.Audit)
	if err != nil {
		slog.Error("Failed to initialize audit sink", "error", err)
		os.Exit(1)
	}

	// Create credential store
	store := persistence.NewCredentialStore(database.DB(), hasher)

	// Create auth use cases
	policyCfg := cfg.Security.PolicyConfig()
	registerUseCase := auth.NewRegisterUserUseCase(store, policyCfg, auditSink)
	loginUseCase := auth.NewLoginUserUseCase(store, auditSink)
	logoutUseCase := auth.NewLogoutUserUseCase(auditSink)
	changePasswordUseCase := auth.NewChangePasswordUseCase(store, policyCfg, auditSink)
	accountInfoUseCase := auth.NewGetAccountInfoUseCase(store)

	// Run the interactive menu
	menu := console.New(
		registerUseCase,
		loginUseCase,
		logoutUseCase,
		changePasswordUseCase,
		accountInfoUseCase,
		cfg.Security.MaxLoginAttempts,
		cfg.Session.IdleTimeout,
		os.Stdin,
		os.Stdout,
	)

	if err := menu.Run(context.Background()); err != nil {
		slog.Error("Menu loop terminated", "error", err)
		os.Exit(1)
	}
}
