package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/handlers"
	"github.com/kamaucodes/marketplace_api/middleware"
)

func ProductRoutes(app *fiber.App) {
	products := app.Group("/api/v1/products", middleware.Protected())
	products.Post("", handlers.CreateProduct)
	products.Get("/mine", handlers.MyProducts)
	products.Put("/:productId", handlers.UpdateProduct)
	products.Delete("/:productId", handlers.DeleteProduct)
}
