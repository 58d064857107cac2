// Package server assembles the Fiber application.
package server

import (
	"context"
	"errors"
	"log"
	"time"

	"katalog/internal/database"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accessLogFormat = "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} ${path}\n"

// Options configures the application.
type Options struct {
	AppName string
	// DB is pinged by the health check. Nil when products are kept in memory.
	DB *gorm.DB
	// Tokens guards /api when set.
	Tokens *services.TokenService
	// DisableAccessLog turns off the request logger.
	DisableAccessLog bool
}

// NewApp builds the Fiber app with middleware and routes registered.
func NewApp(productService *services.ProductService, validate *validation.Validator, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if !opts.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: accessLogFormat,
		}))
	}

	app.Get("/health", healthHandler(opts.DB))

	guards := []fiber.Handler{}
	if opts.Tokens != nil {
		guards = append(guards, middleware.AuthRequired(opts.Tokens))
	}
	api := app.Group("/api", guards...)
	handlers.NewProductHandler(productService, validate).RegisterRoutes(api)

	return app
}

// errorHandler renders framework errors (unknown routes, recovered panics)
// as a JSON message.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[server] %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"message": utils.StatusMessage(code),
	})
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		health := "healthy"
		dbStatus := "memory"

		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := database.Ping(ctx, db); err != nil {
				log.Printf("[server] Health check failed: %v", err)
				status = fiber.StatusServiceUnavailable
				health = "unhealthy"
				dbStatus = "disconnected"
			} else {
				dbStatus = "connected"
			}
		}

		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	}
}
