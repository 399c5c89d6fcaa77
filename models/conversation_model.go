package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	// PairKey is the sorted participant IDs joined with ":". The unique
	// index makes the unordered participant pair a uniqueness key, so two
	// concurrent posts between the same pair cannot create two rows.
	PairKey string `gorm:"size:80;not null;uniqueIndex" json:"-"`

	Participants []*User   `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`
	Messages     []Message `gorm:"foreignkey:ConversationID" json:"messages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ParticipantPairKey builds the normalized key for a two-party conversation.
func ParticipantPairKey(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}
