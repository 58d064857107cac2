package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/repositories"
	"katalog/internal/server"
	"katalog/internal/services"
	"katalog/internal/validation"
	"katalog/pkg/rabbitmq"
)

const seedCount = 30

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, cleanup, err := setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	log.Printf("Starting %s on port %s", cfg.AppName, cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// setup wires the repository, event publisher, service and HTTP app from cfg.
// The returned cleanup releases the database and RabbitMQ connections.
func setup(cfg *config.Config) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Initialize Repository ---
	opts := server.Options{AppName: cfg.AppName}
	var productRepo repositories.ProductRepository
	if cfg.DBDriver == "memory" {
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBDebug)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := database.Close(db); err != nil {
				log.Printf("Error closing database: %v", err)
			}
		})
		productRepo = repositories.NewGORMProductRepository(db)
		opts.DB = db
	}

	if cfg.DBSeed {
		if err := database.Seed(context.Background(), productRepo, seedCount); err != nil {
			cleanup()
			return nil, nil, err
		}
		log.Printf("Seeded %d products", seedCount)
	}

	// --- Initialize Services ---
	serviceOpts := []services.ProductServiceOption{
		services.WithPagination(repositories.Pagination{
			DefaultPerPage: cfg.DefaultPerPage,
			MaxPerPage:     cfg.MaxPerPage,
		}),
	}
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				log.Printf("Error closing RabbitMQ client: %v", err)
			}
		})
		serviceOpts = append(serviceOpts, services.WithEventPublisher(mqClient))
	}
	productService := services.NewProductService(productRepo, serviceOpts...)

	validate, err := validation.New(cfg.Locale)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if cfg.AuthEnabled() {
		opts.Tokens = services.NewTokenService(cfg.JWTSecret)
	}

	// --- Initialize Fiber App ---
	return server.NewApp(productService, validate, opts), cleanup, nil
}
