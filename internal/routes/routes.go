// Package routes wires repositories, services, and handlers, and registers
// all HTTP routes.
package routes

import (
	"bankcards/internal/config"
	"bankcards/internal/handlers"
	"bankcards/internal/middleware"
	"bankcards/internal/repositories"
	"bankcards/internal/services/auth"
	"bankcards/internal/services/card"
	"bankcards/internal/services/user"
	"bankcards/internal/utils/cardnumber"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) error {
	encryptor, err := cardnumber.NewEncryptor(config.GetEnv("CARD_AES_KEY", ""))
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	cardRepo := repositories.NewCardRepository(db, repositories.CacheService)

	authService := auth.NewService(userRepo)
	cardService := card.NewService(cardRepo, userRepo, encryptor)
	cardAdminService := card.NewAdminService(cardRepo, userRepo, encryptor)
	userService := user.NewService(userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	cardHandler := handlers.NewCardHandler(cardService)
	adminHandler := handlers.NewAdminHandler(cardAdminService, userService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Post("/logout", authHandler.Logout)

	cards := authenticated.Group("/cards")
	cards.Get("/", cardHandler.ListCards)
	cards.Post("/transfer", cardHandler.Transfer)
	cards.Get("/:id/balance", cardHandler.GetBalance)
	cards.Post("/:id/request-block", cardHandler.RequestBlock)

	admin := authenticated.Group("/admin", middleware.AdminOnly)
	admin.Post("/cards", adminHandler.CreateCard)
	admin.Get("/cards", adminHandler.ListCards)
	admin.Post("/cards/:id/activate", adminHandler.ActivateCard)
	admin.Post("/cards/:id/block", adminHandler.BlockCard)
	admin.Delete("/cards/:id", adminHandler.DeleteCard)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)

	return nil
}
