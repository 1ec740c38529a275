package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorconnect-backend/internal/config"
	"mentorconnect-backend/internal/database"
	"mentorconnect-backend/internal/handlers"
	"mentorconnect-backend/internal/middleware"
	"mentorconnect-backend/internal/repository"
	"mentorconnect-backend/internal/router"
	"mentorconnect-backend/internal/services"
	"mentorconnect-backend/internal/websocket"
	"mentorconnect-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting MentorConnect Backend...")

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

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	feedbackRepo := repository.NewFeedbackRepo(pool)
	skillRepo := repository.NewSkillRepo(pool)
	notificationRepo := repository.NewNotificationRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	authService := services.NewAuthService(userRepo, redisClients.Store, jwtAuth)
	sessionService := services.NewSessionService(pool, sessionRepo, notificationRepo, userRepo, redisClients.Store)
	feedbackService := services.NewFeedbackService(feedbackRepo, sessionRepo, skillRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo, skillRepo)
	mentorHandler := handlers.NewMentorHandler(userRepo, feedbackRepo)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	dashboardHandler := handlers.NewDashboardHandler(pool, userRepo, sessionRepo, feedbackRepo)

	// ──── Step 5: Start Email Worker Pool ────
	workerPool := worker.NewPool(redisClients.Store, emailService, cfg.EmailWorkers)
	workerPool.Start()
	log.Printf("✓ Email worker pool started (%d goroutines)", cfg.EmailWorkers)

	reminderScheduler := services.NewReminderScheduler(sessionRepo, userRepo, emailService)
	reminderScheduler.Start()
	log.Println("✓ Session reminder scheduler started")

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		userHandler,
		mentorHandler,
		sessionHandler,
		feedbackHandler,
		notificationHandler,
		dashboardHandler,
		wsHub,
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
		reminderScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ MentorConnect Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
