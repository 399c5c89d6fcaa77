package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kamaucodes/marketplace_api/database"
	"github.com/kamaucodes/marketplace_api/handlers"
	"github.com/kamaucodes/marketplace_api/models"
	"github.com/kamaucodes/marketplace_api/routes"
	"github.com/kamaucodes/marketplace_api/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductReview{},
		&models.Conversation{},
		&models.Message{},
	)
	require.NoError(t, err)
	database.DB = db

	app := fiber.New(fiber.Config{CaseSensitive: true, StrictRouting: true})
	messagingHandler := handlers.NewMessagingHandler(services.NewMessagingService(db))
	routes.AuthRoutes(app)
	routes.MessagingRoutes(app, messagingHandler)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		FullName: username + " Test",
		Email:    username + "@example.com",
		Password: "irrelevant",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, owner *models.User, title, slug string) *models.Product {
	t.Helper()

	product := models.Product{
		UserID: owner.ID,
		Title:  title,
		Brand:  "un-branded",
		Slug:   slug,
		Price:  49.99,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func bearerToken(t *testing.T, user *models.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func Test_CreateMessage_JSON_Roundtrip(t *testing.T) {
	req := require.New(t)
	app, db := newTestApp(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedProduct(t, db, bob, "Red Shoes", "red-shoes")

	resp := doJSON(t, app, "POST", "/create-message/red-shoes", bearerToken(t, alice), fiber.Map{
		"subject": "Available?",
		"body":    "Is this still for sale?",
	})
	req.Equal(http.StatusOK, resp.StatusCode)

	var created map[string]string
	decodeBody(t, resp, &created)
	req.Equal("ok", created["status"])

	var message models.Message
	req.NoError(db.First(&message).Error)
	req.Equal(alice.ID, message.SenderID)
	req.Equal(bob.ID, message.ReceiverID)

	// Receiver polls, sees unread, marks read, polls again.
	resp = doJSON(t, app, "GET", "/check-new-messages", bearerToken(t, bob), nil)
	req.Equal(http.StatusOK, resp.StatusCode)
	var poll map[string]bool
	decodeBody(t, resp, &poll)
	req.True(poll["has_unread_messages"])

	resp = doJSON(t, app, "POST", "/mark-conversation-messages-read/"+message.ConversationID.String(), bearerToken(t, bob), nil)
	req.Equal(http.StatusOK, resp.StatusCode)
	var marked map[string]any
	decodeBody(t, resp, &marked)
	req.Equal(true, marked["success"])

	resp = doJSON(t, app, "GET", "/check-new-messages", bearerToken(t, bob), nil)
	decodeBody(t, resp, &poll)
	req.False(poll["has_unread_messages"])
}

func Test_CreateMessage_Rejects_Malformed_JSON(t *testing.T) {
	req := require.New(t)
	app, db := newTestApp(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedProduct(t, db, bob, "Red Shoes", "red-shoes")

	httpReq := httptest.NewRequest("POST", "/create-message/red-shoes", bytes.NewReader([]byte("{not json")))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", bearerToken(t, alice))

	resp, err := app.Test(httpReq, -1)
	req.NoError(err)
	req.Equal(http.StatusBadRequest, resp.StatusCode)

	var messages int64
	req.NoError(db.Model(&models.Message{}).Count(&messages).Error)
	req.Zero(messages)
}

func Test_CreateMessage_Unknown_Product(t *testing.T) {
	req := require.New(t)
	app, db := newTestApp(t)

	alice := seedUser(t, db, "alice")

	resp := doJSON(t, app, "POST", "/create-message/no-such-product", bearerToken(t, alice), fiber.Map{
		"subject": "Hi",
		"body":    "Hello",
	})
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func Test_CreateMessage_Requires_Auth(t *testing.T) {
	req := require.New(t)
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/message-list", "", nil)
	req.Equal(http.StatusBadRequest, resp.StatusCode)
}

func Test_MessageList_Returns_Caller_Threads(t *testing.T) {
	req := require.New(t)
	app, db := newTestApp(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	seedProduct(t, db, bob, "Red Shoes", "red-shoes")

	resp := doJSON(t, app, "POST", "/create-message/red-shoes", bearerToken(t, alice), fiber.Map{
		"subject": "Available?",
		"body":    "Is this still for sale?",
	})
	req.Equal(http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/message-list", bearerToken(t, alice), nil)
	req.Equal(http.StatusOK, resp.StatusCode)

	var threads []handlers.ConversationResponse
	decodeBody(t, resp, &threads)
	req.Len(threads, 1)
	req.ElementsMatch([]string{"alice", "bob"}, threads[0].Participants)
	req.Len(threads[0].Messages, 1)
	req.NotNil(threads[0].LastActivityAt)

	// Bystanders see nothing.
	resp = doJSON(t, app, "GET", "/message-list", bearerToken(t, carol), nil)
	var empty []handlers.ConversationResponse
	decodeBody(t, resp, &empty)
	req.Empty(empty)
}

func Test_DeleteConversation_Endpoint(t *testing.T) {
	req := require.New(t)
	app, db := newTestApp(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	seedProduct(t, db, bob, "Red Shoes", "red-shoes")

	resp := doJSON(t, app, "POST", "/create-message/red-shoes", bearerToken(t, alice), fiber.Map{
		"subject": "Hi",
		"body":    "Hello",
	})
	req.Equal(http.StatusOK, resp.StatusCode)

	var message models.Message
	req.NoError(db.First(&message).Error)
	path := "/delete-message/" + message.ConversationID.String()

	resp = doJSON(t, app, "POST", path, bearerToken(t, carol), nil)
	req.Equal(http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "POST", path, bearerToken(t, alice), nil)
	req.Equal(http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", path, bearerToken(t, alice), nil)
	req.Equal(http.StatusNotFound, resp.StatusCode)
}

func Test_MarkRead_Unknown_Conversation(t *testing.T) {
	req := require.New(t)
	app, db := newTestApp(t)

	alice := seedUser(t, db, "alice")

	resp := doJSON(t, app, "POST", "/mark-conversation-messages-read/not-a-uuid", bearerToken(t, alice), nil)
	req.Equal(http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	req.Equal(false, body["success"])
	req.Equal("Conversation not found", body["error"])
}
