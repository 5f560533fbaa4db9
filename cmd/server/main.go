package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "dueshub-backend/internal/api/http"
	"dueshub-backend/internal/config"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository/postgres"
	"dueshub-backend/internal/security"
	"dueshub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DuesHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenValidator := security.NewTokenValidator(cfg.JWT.Secret)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.Dues.Currency,
	)

	// Initialize Services
	duesSvc := service.NewDuesService(
		store.DuesRepository,
		store.MemberRepository,
		store.OrganizationRepository,
		store.UserRepository,
		cfg.Dues.DefaultAmount,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.DuesRepository,
		store.MemberRepository,
		store.OrganizationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	reminderSvc := service.NewReminderService(
		store.DuesRepository,
		store.MemberRepository,
		store.OrganizationRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
	)
	memberSvc := service.NewMemberService(
		store.MemberRepository,
		store.OrganizationRepository,
		store.UserRepository,
	)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository, store.UserRepository)
	txSvc := service.NewTransactionService(store.TransactionRepository, store.UserRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Build router
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Dues:          duesSvc,
		Payments:      paymentSvc,
		Reminders:     reminderSvc,
		Members:       memberSvc,
		Organizations: orgSvc,
		Transactions:  txSvc,
		Notifications: noteSvc,
		Validator:     tokenValidator,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
