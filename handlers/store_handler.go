package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/database"
	"github.com/kamaucodes/marketplace_api/models"
)

// Store lists all products ordered by title, paginated the way the old
// storefront paginator was (50 per page).
func Store(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := database.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}

	var products []models.Product
	err := database.DB.
		Preload("Category").
		Preload("Images").
		Order("title asc").
		Limit(pageSize).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}

	return c.JSON(fiber.Map{
		"products":  products,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}

func ProductInfo(c *fiber.Ctx) error {
	productSlug := c.Params("productSlug")

	var product models.Product
	err := database.DB.
		Preload("Category").
		Preload("Images").
		Where("slug = ?", productSlug).
		First(&product).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var reviews []models.ProductReview
	if err := database.DB.Where("product_id = ?", product.ID).Order("created_at desc").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	return c.JSON(fiber.Map{"product": product, "reviews": reviews})
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

func ListCategory(c *fiber.Ctx) error {
	categorySlug := c.Params("categorySlug")

	var category models.Category
	if err := database.DB.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var products []models.Product
	err := database.DB.
		Preload("Images").
		Where("category_id = ?", category.ID).
		Order("title asc").
		Find(&products).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}

	return c.JSON(fiber.Map{"category": category, "products": products})
}

// ProductSearch matches product titles case-insensitively. An empty query
// returns an empty result rather than the whole catalog.
func ProductSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return c.JSON(fiber.Map{"search_results": []models.Product{}})
	}

	var products []models.Product
	err := database.DB.
		Preload("Category").
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("title asc").
		Find(&products).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Search failed"})
	}

	return c.JSON(fiber.Map{"search_results": products})
}
