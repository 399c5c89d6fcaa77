package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamaucodes/marketplace_api/handlers"
	"github.com/kamaucodes/marketplace_api/middleware"
)

// MessagingRoutes keeps the storefront's historical paths; they predate the
// /api/v1 namespace and the frontend still polls them.
func MessagingRoutes(app *fiber.App, h *handlers.MessagingHandler) {
	app.Post("/create-message/:productSlug", middleware.Protected(), h.CreateMessage)
	app.Get("/message-list", middleware.Protected(), h.MessageList)
	app.Post("/delete-message/:conversationId", middleware.Protected(), h.DeleteConversation)
	app.Post("/mark-conversation-messages-read/:conversationId", middleware.Protected(), h.MarkConversationRead)
	app.Get("/check-new-messages", middleware.Protected(), h.CheckNewMessages)

	messages := app.Group("/api/v1/messages", middleware.Protected())
	messages.Delete("/:messageId", h.DeleteMessage)
}
