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

	httpapi "fleetdesk-backend/internal/api/http"
	"fleetdesk-backend/internal/config"
	"fleetdesk-backend/internal/logger"
	"fleetdesk-backend/internal/repository/postgres"
	"fleetdesk-backend/internal/security"
	"fleetdesk-backend/internal/service"
	"fleetdesk-backend/internal/storage"

	_ "github.com/lib/pq"
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
	logger.Info("Starting Fleetdesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)

	// Initialize Document Storage
	documents, err := storage.NewLocalDocumentStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Document storage ready", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	services := httpapi.Services{
		Auth:     service.NewAuthService(cfg.Auth.OperatorName, cfg.Auth.OperatorPasswordHash, tokenManager),
		Fleet:    service.NewFleetService(store.CarRepository, store.RentalRepository, store.ExpenseRepository),
		Customer: service.NewCustomerService(store.CustomerRepository, documents),
		Rental: service.NewRentalService(
			store.RentalRepository,
			store.CarRepository,
			store.CustomerRepository,
			store.ChargeRepository,
			store.PaymentRepository,
			int32(cfg.Billing.DefaultIntervalDays),
		),
		Payment: service.NewPaymentService(store.PaymentRepository, store.RentalRepository, store.ChargeRepository),
		Charge:  service.NewChargeService(store.ChargeRepository, store.CarRepository, store.CustomerRepository, store.RentalRepository),
		Booking: service.NewBookingService(store.BookingRepository, store.CarRepository, store.CustomerRepository, store.RentalRepository),
		Expense: service.NewExpenseService(store.ExpenseRepository, store.CarRepository),
		Occupancy: service.NewOccupancyService(
			store.CarRepository,
			store.RentalRepository,
			store.BookingRepository,
		),
		Settlement: service.NewSettlementService(store.RentalRepository, store.ChargeRepository, store.SettlementRepository),
		Report: service.NewReportService(
			store.CarRepository,
			store.RentalRepository,
			store.PaymentRepository,
			store.ChargeRepository,
			store.ExpenseRepository,
			store.BookingRepository,
			int32(cfg.Billing.RenewalLookaheadDays),
		),
	}

	// Set up HTTP server
	router := httpapi.NewRouter(services, tokenManager, cfg.Storage.MaxFileSizeMB)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
