package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/kamaucodes/marketplace_api/database"
	"github.com/kamaucodes/marketplace_api/models"
	"github.com/kamaucodes/marketplace_api/utils"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,max=250"`
	Brand       string   `json:"brand" validate:"max=250"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	CategoryID  *string  `json:"category_id" validate:"omitempty,uuid"`
	ImageURLs   []string `json:"image_urls" validate:"dive,url"`
}

func CreateProduct(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var product models.Product
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var categoryID *uuid.UUID
		if req.CategoryID != nil {
			parsed, _ := uuid.Parse(*req.CategoryID)
			var category models.Category
			if err := tx.Where("id = ?", parsed).First(&category).Error; err != nil {
				return errors.New("category not found")
			}
			categoryID = &category.ID
		}

		slug, err := utils.GenerateUniqueProductSlug(tx, req.Title)
		if err != nil {
			return err
		}

		brand := req.Brand
		if brand == "" {
			brand = "un-branded"
		}

		product = models.Product{
			CategoryID:  categoryID,
			UserID:      userID,
			Title:       req.Title,
			Brand:       brand,
			Description: req.Description,
			Slug:        slug,
			Price:       req.Price,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		for _, url := range req.ImageURLs {
			image := models.ProductImage{ProductID: product.ID, URL: url}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err.Error() == "category not found" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

func MyProducts(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var products []models.Product
	err := database.DB.
		Preload("Category").
		Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}

	return c.JSON(products)
}

type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=250"`
	Brand       *string  `json:"brand" validate:"omitempty,max=250"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
}

func UpdateProduct(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	productID := c.Params("productId")

	var product models.Product
	if err := database.DB.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := database.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
	}

	return c.JSON(product)
}

func DeleteProduct(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	productID := c.Params("productId")

	var product models.Product
	if err := database.DB.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteProductRows(tx, &product)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete product"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// deleteProductRows removes a product with its images and reviews. Messages
// keep their history; their product reference just goes null.
func deleteProductRows(tx *gorm.DB, product *models.Product) error {
	if err := tx.Model(&models.Message{}).
		Where("product_id = ?", product.ID).
		Update("product_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductReview{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Product{}, "id = ?", product.ID).Error
}
