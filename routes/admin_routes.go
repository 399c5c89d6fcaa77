package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/handlers"
	"github.com/kamaucodes/marketplace_api/middleware"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/users", handlers.ListUsers)
	admin.Patch("/users/:userId", handlers.SetUserActive)
	admin.Delete("/products/:productId", handlers.AdminDeleteProduct)
}
