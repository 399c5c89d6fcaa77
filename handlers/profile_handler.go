package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/kamaucodes/marketplace_api/database"
	"github.com/kamaucodes/marketplace_api/models"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	database.DB.Save(&user)

	return c.JSON(user)
}

func DeleteAccount(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Where("user_id = ?", userID).Find(&products).Error; err != nil {
			return err
		}
		for _, product := range products {
			if err := deleteProductRows(tx, &product); err != nil {
				return err
			}
		}

		if err := tx.Where("author_id = ?", userID).Delete(&models.ProductReview{}).Error; err != nil {
			return err
		}

		// Conversations the user belongs to go with the account, messages
		// included, so no message is left pointing at a deleted identity.
		var conversationIDs []uuid.UUID
		if err := tx.Table("conversation_participants").
			Where("user_id = ?", userID).
			Pluck("conversation_id", &conversationIDs).Error; err != nil {
			return err
		}
		if len(conversationIDs) > 0 {
			if err := tx.Where("conversation_id IN ?", conversationIDs).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM conversation_participants WHERE conversation_id IN ?", conversationIDs).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", conversationIDs).Delete(&models.Conversation{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete account"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
