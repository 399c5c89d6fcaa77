package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/handlers"
	"github.com/kamaucodes/marketplace_api/middleware"
)

func StoreRoutes(app *fiber.App) {
	store := app.Group("/api/v1/store")
	store.Get("", handlers.Store)
	store.Get("/categories", handlers.ListCategories)
	store.Get("/category/:categorySlug", handlers.ListCategory)
	store.Get("/search", handlers.ProductSearch)
	store.Get("/product/:productSlug", handlers.ProductInfo)

	store.Post("/product-review/:productId", middleware.Protected(), handlers.CreateReview)
	store.Put("/edit-review/:reviewId", middleware.Protected(), handlers.UpdateReview)
}
