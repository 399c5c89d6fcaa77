package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	UserID      uuid.UUID  `gorm:"not null" json:"user_id"`
	Title       string     `gorm:"size:250;not null" json:"title"`
	Brand       string     `gorm:"size:250;not null;default:'un-branded'" json:"brand"`
	Description string     `gorm:"type:text" json:"description"`
	Slug        string     `gorm:"size:255;not null;unique" json:"slug"`
	Price       float64    `gorm:"type:numeric(9,2);not null" json:"price"`

	Category *Category      `gorm:"foreignkey:CategoryID" json:"category,omitempty"`
	User     User           `gorm:"foreignkey:UserID" json:"-"`
	Images   []ProductImage `gorm:"foreignkey:ProductID" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
