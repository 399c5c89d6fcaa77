package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage stores a reference to an externally hosted image. The
// binary itself lives with the image storage collaborator.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"not null" json:"product_id"`
	URL       string    `gorm:"size:255;not null" json:"url"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
