package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "school-lending-backend/internal/api/http"
	"school-lending-backend/internal/config"
	"school-lending-backend/internal/jobs"
	"school-lending-backend/internal/logger"
	"school-lending-backend/internal/repository/postgres"
	"school-lending-backend/internal/scheduler"
	"school-lending-backend/internal/security"
	"school-lending-backend/internal/service"
	"school-lending-backend/internal/utils"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	withScheduler := flag.Bool("with-scheduler", false, "Run the cron scheduler inside the server process")
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting School Lending Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	fineSchedule := utils.FineSchedule{
		PerDayRupiah:     cfg.Fines.PerDayRupiah,
		FlatDamageRupiah: cfg.Fines.FlatDamageRupiah,
		FlatLossRupiah:   cfg.Fines.FlatLossRupiah,
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, store.ActivityLogRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.ActivityLogRepository)
	itemSvc := service.NewItemService(store.ItemRepository, store.ActivityLogRepository)
	categorySvc := service.NewCategoryService(store.CategoryRepository, store.ActivityLogRepository)
	departmentSvc := service.NewDepartmentService(store.DepartmentRepository, store.ActivityLogRepository)
	loanSvc := service.NewLoanService(store.LoanRepository, store.ItemRepository, store.ActivityLogRepository, fineSchedule)
	fineSvc := service.NewFineService(store.FineRepository, store.LoanRepository, store.ActivityLogRepository, fineSchedule)
	activitySvc := service.NewActivityService(store.ActivityLogRepository)

	router := httpapi.NewRouter(httpapi.Services{
		Auth:       authSvc,
		User:       userSvc,
		Item:       itemSvc,
		Category:   categorySvc,
		Department: departmentSvc,
		Loan:       loanSvc,
		Fine:       fineSvc,
		Activity:   activitySvc,
	}, tokenManager)

	// Optionally run the scheduler in-process instead of the cronjob binary
	if *withScheduler {
		emailSvc := service.NewEmailService(
			cfg.SMTP.Host,
			fmt.Sprintf("%d", cfg.SMTP.Port),
			cfg.SMTP.User,
			cfg.SMTP.Password,
			cfg.SMTP.From,
		)
		jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Fine: fineSvc, Email: emailSvc}, cfg)
		cronScheduler := scheduler.NewScheduler(jobRunner)
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
