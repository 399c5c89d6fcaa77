package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/handlers"
	"github.com/kamaucodes/marketplace_api/middleware"
)

func AccountRoutes(app *fiber.App) {
	profile := app.Group("/api/v1/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
	profile.Delete("", handlers.DeleteAccount)
}
