package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartpulse-backend/internal/config"
	"smartpulse-backend/internal/database"
	"smartpulse-backend/internal/handlers"
	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/repository"
	"smartpulse-backend/internal/router"
	"smartpulse-backend/internal/services"
	"smartpulse-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting SmartPulse Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	companyRepo := repository.NewCompanyRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	projectRepo := repository.NewProjectRepo(pool)
	alertRepo := repository.NewAlertRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	authService := services.NewAuthService(userRepo, companyRepo, redisClient, jwtAuth)
	statsService := services.NewStatsService(sessionRepo, rand.Intn)
	insightsService := services.NewInsightsService(userRepo, sessionRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(statsService, insightsService, userRepo, alertRepo, companyRepo)
	employeeHandler := handlers.NewEmployeeHandler(statsService, userRepo, companyRepo, projectRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, redisClient)

	// ──── Step 5: Start Alert Worker Pool ────
	workerPool := worker.NewPool(redisClient, sessionRepo, userRepo, alertRepo, emailService, cfg.AlertWorkers)
	workerPool.Start()
	log.Printf("✓ Alert worker pool started (%d goroutines)", cfg.AlertWorkers)

	reportScheduler := services.NewReportScheduler(userRepo, sessionRepo, emailService, redisClient)
	reportScheduler.Start()
	log.Println("✓ Daily report scheduler started")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		userHandler,
		employeeHandler,
		projectHandler,
		sessionHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()
		reportScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ SmartPulse Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
