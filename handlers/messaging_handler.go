package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/kamaucodes/marketplace_api/models"
	"github.com/kamaucodes/marketplace_api/services"
	"github.com/samber/lo"
)

// MessagingHandler carries its dependencies explicitly instead of reaching
// for package globals, so tests can wire it against any store.
type MessagingHandler struct {
	Service *services.MessagingService
}

func NewMessagingHandler(service *services.MessagingService) *MessagingHandler {
	return &MessagingHandler{Service: service}
}

type CreateMessageRequest struct {
	Subject  string `json:"subject" form:"subject" validate:"required,max=200"`
	Body     string `json:"body" form:"body" validate:"required"`
	Receiver string `json:"receiver" form:"receiver"`
}

func (h *MessagingHandler) CreateMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	senderID, _ := uuid.Parse(claims["user_id"].(string))
	productSlug := c.Params("productSlug")

	isJSON := strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)

	var req CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON data"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	_, err := h.Service.PostMessage(services.PostMessageInput{
		SenderID:         senderID,
		ProductSlug:      productSlug,
		Subject:          req.Subject,
		Body:             req.Body,
		ReceiverUsername: req.Receiver,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
		}
	}

	if !isJSON {
		// Form posts come from the product page and go back to it.
		return c.Redirect("/api/v1/store/product/"+productSlug, fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

type ConversationResponse struct {
	ID             uuid.UUID        `json:"id"`
	Participants   []string         `json:"participants"`
	Messages       []models.Message `json:"messages"`
	UnreadCount    int              `json:"unread_count"`
	LastActivityAt *time.Time       `json:"last_activity_at"`
}

func (h *MessagingHandler) MessageList(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversations, err := h.Service.ListConversations(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	response := lo.Map(conversations, func(conversation models.Conversation, _ int) ConversationResponse {
		participants := lo.Map(conversation.Participants, func(p *models.User, _ int) string {
			return p.Username
		})
		unread := lo.CountBy(conversation.Messages, func(m models.Message) bool {
			return m.ReceiverID == userID && !m.ReadByReceiver
		})

		var lastActivityAt *time.Time
		if n := len(conversation.Messages); n > 0 {
			lastActivityAt = &conversation.Messages[n-1].CreatedAt
		}

		return ConversationResponse{
			ID:             conversation.ID,
			Participants:   participants,
			Messages:       conversation.Messages,
			UnreadCount:    unread,
			LastActivityAt: lastActivityAt,
		}
	})

	return c.JSON(response)
}

func (h *MessagingHandler) DeleteConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	}

	if err := h.Service.DeleteConversation(userID, conversationID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete conversation"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *MessagingHandler) MarkConversationRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	conversationID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Conversation not found"})
	}

	if err := h.Service.MarkConversationRead(userID, conversationID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Conversation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to mark conversation read"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *MessagingHandler) CheckNewMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	hasUnread, err := h.Service.HasUnread(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check messages"})
	}

	return c.JSON(fiber.Map{"has_unread_messages": hasUnread})
}

func (h *MessagingHandler) DeleteMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	messageID, err := uuid.Parse(c.Params("messageId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}

	message, err := h.Service.GetMessage(messageID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete message"})
	}
	if message.SenderID != userID && message.ReceiverID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	}

	if err := h.Service.DeleteMessage(messageID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete message"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
