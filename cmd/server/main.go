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

	"studyspot-backend/internal/config"
	"studyspot-backend/internal/database"
	"studyspot-backend/internal/handlers"
	"studyspot-backend/internal/middleware"
	"studyspot-backend/internal/repository"
	"studyspot-backend/internal/router"
	"studyspot-backend/internal/services"
	"studyspot-backend/internal/websocket"
	"studyspot-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting StudySpot Backend...")

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
	spotRepo := repository.NewSpotRepo(pool)
	checkInRepo := repository.NewCheckInRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)
	dailyXP := services.NewDailyXPCounter(redisClients.Queue, cfg.Timezone)
	events := services.NewEventPublisher(redisClients.PubSub)
	identityCache := services.NewIdentityCache(userRepo, cfg.IdentityCacheSize, cfg.IdentityCacheTTL)
	checkInService := services.NewCheckInService(
		checkInRepo,
		sessionRepo,
		statsRepo,
		spotRepo,
		dailyXP,
		events,
		cfg.Timezone,
	)
	leaderboardService := services.NewLeaderboardService(statsRepo, identityCache)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	checkInHandler := handlers.NewCheckInHandler(checkInService)
	statsHandler := handlers.NewStatsHandler(statsRepo, sessionRepo)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	spotHandler := handlers.NewSpotHandler(spotRepo)
	catalogHandler := handlers.NewCatalogHandler()
	userHandler := handlers.NewUserHandler(userRepo)

	// ──── Step 5: Start Expired Check-In Pipeline ────
	workerPool := worker.NewPool(redisClients.Queue, checkInService, cfg.RecordingWorkers)
	workerPool.Start()
	log.Printf("✓ Recording worker pool started (%d goroutines)", cfg.RecordingWorkers)

	reconciler := services.NewReconciler(checkInRepo, redisClients.Queue)
	reconciler.Start()
	log.Println("✓ Expired check-in reconciler started")

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		checkInHandler,
		statsHandler,
		leaderboardHandler,
		spotHandler,
		catalogHandler,
		userHandler,
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
		reconciler.Stop()
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ StudySpot Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
