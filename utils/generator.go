package utils

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/kamaucodes/marketplace_api/models"
	"gorm.io/gorm"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses runs of non-alphanumerics
// into single hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalid.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateUniqueProductSlug derives a slug from the title and suffixes it
// with random hex until no other product claims it.
func GenerateUniqueProductSlug(tx *gorm.DB, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "product"
	}

	slug := base
	for {
		var count int64
		if err := tx.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}

		suffix := make([]byte, 3)
		if _, err := rand.Read(suffix); err != nil {
			return "", err
		}
		slug = base + "-" + hex.EncodeToString(suffix)
	}
}

// GenerateToken returns a random hex string for verification and
// password-reset links.
func GenerateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
