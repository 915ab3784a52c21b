package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gameshelf/auth"
	"gameshelf/config"
	"gameshelf/events"
	"gameshelf/handlers"
	"gameshelf/models"
	"gameshelf/routes"
)

func main() {
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

	// collection_items soft-references users.id, and users is migrated by the
	// auth service. Wait for it, then migrate only this service's table.
	if err := config.WaitForUsersTable(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := config.DB.AutoMigrate(&models.CollectionItem{}); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	tokens, err := auth.NewTokenService(
		config.Config.Auth.JWTSecret,
		config.Config.Auth.JWTAlg,
		config.Config.Auth.AccessTokenTTLMinutes,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize token service: %v", err)
	}

	publisher := events.NewPublisher(
		config.Config.RabbitMQ.GetRabbitMQURL(),
		config.Config.RabbitMQ.Exchange,
	)

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
	routes.RegisterCollectionRoutes(e, &handlers.CollectionHandler{Events: publisher}, auth.Middleware(tokens))

	// Setup graceful shutdown
	go func() {
		port := config.Config.Server.Port
		log.Printf("🚀 Collection Service running at http://localhost:%s", port)
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

	log.Println("🛑 Shutting down collection service gracefully...")

	if err := e.Close(); err != nil {
		log.Printf("⚠️  Error closing server: %v", err)
	}

	log.Println("✅ Collection Service stopped")
}
