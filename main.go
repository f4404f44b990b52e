package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"assetdesk/internal/config"
	"assetdesk/internal/database"
	"assetdesk/internal/handlers"
	"assetdesk/internal/middleware"
	"assetdesk/internal/repositories"
	"assetdesk/internal/services"
	"assetdesk/web"
)

func main() {
	cfg := config.Load()

	// Opens the sqlite store; creates the schema and seeds the admin plus
	// sample data when the database file does not exist yet.
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	assetRepo := repositories.NewGORMAssetRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionLifetime, cfg.RememberLifetime)
	assetService := services.NewAssetService(assetRepo, userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	assetHandler := handlers.NewAssetHandler(assetService)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		Views: web.Engine(),
	})
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public routes: login, register, logout.
	authHandler.RegisterRoutes(app)

	// Everything else requires a valid session.
	guarded := app.Group("", middleware.SessionRequired(authService))
	assetHandler.RegisterRoutes(guarded)

	// --- Start HTTP server with graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
