package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID uuid.UUID  `gorm:"not null;index" json:"conversation_id"`
	ProductID      *uuid.UUID `json:"product_id"`
	SenderID       uuid.UUID  `gorm:"not null" json:"sender_id"`
	ReceiverID     uuid.UUID  `gorm:"not null;index" json:"receiver_id"`
	Subject        string     `gorm:"size:200;not null" json:"subject"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	ReadBySender   bool       `gorm:"not null;default:false" json:"read_by_sender"`
	ReadByReceiver bool       `gorm:"not null;default:false" json:"read_by_receiver"`

	Conversation Conversation `gorm:"foreignkey:ConversationID" json:"-"`
	Product      *Product     `gorm:"foreignkey:ProductID" json:"-"`
	Sender       User         `gorm:"foreignkey:SenderID" json:"-"`
	Receiver     User         `gorm:"foreignkey:ReceiverID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
