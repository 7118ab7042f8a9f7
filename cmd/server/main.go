// Package main is the entry point for the card service. It initializes all
// dependencies, sets up the HTTP server, and starts the application.
package main

import (
	"time"

	"bankcards/internal/config"
	"bankcards/internal/repositories"
	"bankcards/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if config.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := repositories.InitDB(); err != nil {
		logrus.Fatalf("failed to initialize storage: %v", err)
	}
	defer repositories.CloseDB()

	app := fiber.New(fiber.Config{
		AppName: "bankcards",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Throttle credential endpoints per client IP.
	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        config.GetIntEnv("AUTH_RATE_LIMIT", 5),
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	if err := routes.SetupRoutes(app, repositories.DB); err != nil {
		logrus.Fatalf("failed to set up routes: %v", err)
	}

	logrus.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
