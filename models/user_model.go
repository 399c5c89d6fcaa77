package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"size:150;not null;unique" json:"username"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'customer'" json:"role"`

	// Accounts stay inactive until the email verification link is opened.
	IsActive                    bool       `gorm:"default:false" json:"is_active"`
	VerificationToken           *string    `gorm:"size:64;unique" json:"-"`
	VerificationTokenExpiresAt  *time.Time `json:"-"`
	ResetPasswordToken          *string    `gorm:"size:64;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	Products      []Product       `gorm:"foreignkey:UserID" json:"-"`
	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
