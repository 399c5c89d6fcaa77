package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/database"
	"github.com/kamaucodes/marketplace_api/models"
	"gorm.io/gorm"
)

func ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := database.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var users []models.User
	err := database.DB.
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"users":     users,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func SetUserActive(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = *req.IsActive
	if err := database.DB.Model(&user).Update("is_active", *req.IsActive).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}

// AdminDeleteProduct removes any listing regardless of owner.
func AdminDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("productId")

	var product models.Product
	if err := database.DB.Where("id = ?", productID).First(&product).Error; err != nil {
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
