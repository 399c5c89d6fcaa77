package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kamaucodes/marketplace_api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxSubjectLength = 200

// MessagingService owns conversation and message state transitions. All
// multi-step writes run inside a single transaction so two concurrent posts
// between the same pair cannot both create a conversation.
type MessagingService struct {
	db *gorm.DB
}

func NewMessagingService(db *gorm.DB) *MessagingService {
	return &MessagingService{db: db}
}

type PostMessageInput struct {
	SenderID    uuid.UUID
	ProductSlug string
	Subject     string
	Body        string

	// ReceiverUsername overrides the default receiver (the product owner)
	// when set.
	ReceiverUsername string
}

func (s *MessagingService) PostMessage(in PostMessageInput) (*models.Message, error) {
	subject := strings.TrimSpace(in.Subject)
	body := strings.TrimSpace(in.Body)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject must not be empty", ErrInvalidInput)
	}
	if len(subject) > maxSubjectLength {
		return nil, fmt.Errorf("%w: subject exceeds %d characters", ErrInvalidInput, maxSubjectLength)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body must not be empty", ErrInvalidInput)
	}

	message, err := s.postMessageTx(in, subject, body)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the conversation-creation race. The row exists now, so a
		// second pass finds it by pair key.
		message, err = s.postMessageTx(in, subject, body)
	}
	return message, err
}

func (s *MessagingService) postMessageTx(in PostMessageInput, subject, body string) (*models.Message, error) {
	var message *models.Message

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("slug = ?", in.ProductSlug).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %q", ErrNotFound, in.ProductSlug)
			}
			return err
		}

		var sender models.User
		if err := tx.Where("id = ?", in.SenderID).First(&sender).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sender", ErrNotFound)
			}
			return err
		}

		var receiver models.User
		if in.ReceiverUsername != "" {
			if err := tx.Where("username = ?", in.ReceiverUsername).First(&receiver).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: receiver %q", ErrNotFound, in.ReceiverUsername)
				}
				return err
			}
		} else {
			if err := tx.Where("id = ?", product.UserID).First(&receiver).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product owner", ErrNotFound)
				}
				return err
			}
		}

		if sender.ID == receiver.ID {
			return fmt.Errorf("%w: sender and receiver must differ", ErrInvalidInput)
		}

		conversation, err := findOrCreateConversation(tx, &sender, &receiver)
		if err != nil {
			return err
		}

		productID := product.ID
		message = &models.Message{
			ConversationID: conversation.ID,
			ProductID:      &productID,
			SenderID:       sender.ID,
			ReceiverID:     receiver.ID,
			Subject:        subject,
			Body:           body,
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

func findOrCreateConversation(tx *gorm.DB, sender, receiver *models.User) (*models.Conversation, error) {
	pairKey := models.ParticipantPairKey(sender.ID, receiver.ID)

	var conversation models.Conversation
	err := tx.Where("pair_key = ?", pairKey).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = models.Conversation{
		PairKey:      pairKey,
		Participants: []*models.User{sender, receiver},
	}
	if err := tx.Omit("Participants.*").Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// ListConversations returns every conversation the participant belongs to,
// most recently active first.
func (s *MessagingService) ListConversations(participantID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := s.db.
		Select("conversations.*").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?", participantID).
		Preload("Participants").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at asc")
		}).
		Order("(SELECT MAX(m.created_at) FROM messages m WHERE m.conversation_id = conversations.id) DESC").
		Order("conversations.created_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// MarkConversationRead flips the caller's own read flag on every message in
// the conversation. Messages where the caller is neither sender nor receiver
// are left untouched. Safe to call repeatedly.
func (s *MessagingService) MarkConversationRead(participantID, conversationID uuid.UUID) error {
	if err := s.requireParticipant(participantID, conversationID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id = ?", conversationID, participantID).
			Update("read_by_sender", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Message{}).
			Where("conversation_id = ? AND receiver_id = ?", conversationID, participantID).
			Update("read_by_receiver", true).Error
	})
}

// DeleteConversation removes the conversation and every message it owns.
func (s *MessagingService) DeleteConversation(participantID, conversationID uuid.UUID) error {
	if err := s.requireParticipant(participantID, conversationID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", conversationID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Select(clause.Associations).Delete(&models.Conversation{ID: conversationID}).Error
	})
}

// GetMessage fetches a single message by id.
func (s *MessagingService) GetMessage(messageID uuid.UUID) (*models.Message, error) {
	var message models.Message
	if err := s.db.Where("id = ?", messageID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message %s", ErrNotFound, messageID)
		}
		return nil, err
	}
	return &message, nil
}

// DeleteMessage removes a single message. An emptied conversation stays.
func (s *MessagingService) DeleteMessage(messageID uuid.UUID) error {
	result := s.db.Where("id = ?", messageID).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: message %s", ErrNotFound, messageID)
	}
	return nil
}

// HasUnread reports whether any message addressed to the participant is
// still unread. Backs the polling endpoint.
func (s *MessagingService) HasUnread(participantID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND read_by_receiver = ?", participantID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// requireParticipant resolves the conversation and checks membership.
// Non-participants get NotFound rather than a hint the conversation exists.
func (s *MessagingService) requireParticipant(participantID, conversationID uuid.UUID) error {
	var conversation models.Conversation
	if err := s.db.Where("id = ?", conversationID).First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return err
	}

	var membership int64
	err := s.db.Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, participantID).
		Count(&membership).Error
	if err != nil {
		return err
	}
	if membership == 0 {
		return fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
	}
	return nil
}
