package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gameshelf/auth"
	"gameshelf/config"
	"gameshelf/consumer"
	"gameshelf/handlers"
	"gameshelf/models"
	"gameshelf/routes"
	"gameshelf/storage"
)

func main() {
	// Define command-line flags
	mode := flag.String("mode", "all", "Run mode: 'api', 'consumer' or 'all'")
	flag.Parse()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("❌ Failed to initialize configuration: %v", err)
	}

	// Print configuration (for debugging)
	if config.Config.Server.IsDevelopment() {
		config.PrintConfig()
	}

	// Connect to database
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDB()

	// event_logs soft-references users.id, and users is migrated by the auth
	// service. Wait for it, then migrate only this service's table.
	if err := config.WaitForUsersTable(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := config.DB.AutoMigrate(&models.EventLog{}); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	store := storage.NewEventLogStore(config.DB)

	// Run based on mode
	switch *mode {
	case "api":
		runAPI(store, nil)
	case "consumer":
		runConsumer(store)
	case "all":
		// One consumer goroutine per process; the broker spreads the queue
		// across processes when more instances are started.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cons := consumer.New(config.Config.RabbitMQ, store)
		go func() {
			if err := cons.Run(ctx); err != nil {
				log.Printf("🛑 Consumer exited: %v", err)
			}
		}()

		runAPI(store, cancel)
	default:
		log.Fatalf("❌ Invalid mode: %s. Use 'api', 'consumer' or 'all'", *mode)
	}
}

func runAPI(store *storage.EventLogStore, stopConsumer context.CancelFunc) {
	tokens, err := auth.NewTokenService(
		config.Config.Auth.JWTSecret,
		config.Config.Auth.JWTAlg,
		config.Config.Auth.AccessTokenTTLMinutes,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize token service: %v", err)
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET,
			echo.POST,
			echo.PUT,
			echo.PATCH,
			echo.DELETE,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))

	// Register routes
	routes.RegisterStatsRoutes(e, &handlers.StatsHandler{Store: store}, auth.Middleware(tokens))

	// Setup graceful shutdown
	go func() {
		port := config.Config.Server.Port
		log.Printf("🚀 Stats Service running at http://localhost:%s", port)
		log.Printf("📍 Environment: %s", config.Config.Server.Env)
		log.Println("📍 Health check: http://localhost:" + port + "/health")

		if err := e.Start(":" + port); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down stats service gracefully...")

	if stopConsumer != nil {
		stopConsumer()
	}

	if err := e.Close(); err != nil {
		log.Printf("⚠️  Error closing server: %v", err)
	}

	log.Println("✅ Stats Service stopped")
}

func runConsumer(store *storage.EventLogStore) {
	log.Println("🎧 Starting in Consumer mode...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cons := consumer.New(config.Config.RabbitMQ, store)

	// Stop the loop on SIGINT/SIGTERM; the in-flight handler finishes before
	// the connection is torn down.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("⚠️  Received signal: %v. Shutting down gracefully...", sig)
		cancel()
	}()

	if err := cons.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("❌ Consumer error: %v", err)
	}

	log.Println("✅ Consumer stopped")
}
