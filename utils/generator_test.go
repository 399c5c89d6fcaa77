package utils

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/kamaucodes/marketplace_api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_Slugify(t *testing.T) {
	req := require.New(t)

	req.Equal("red-shoes", Slugify("Red Shoes"))
	req.Equal("red-shoes", Slugify("  Red   Shoes!  "))
	req.Equal("size-42-eu", Slugify("Size 42 (EU)"))
	req.Equal("", Slugify("!!!"))
}

func Test_GenerateUniqueProductSlug(t *testing.T) {
	req := require.New(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	req.NoError(err)
	sqlDB, err := db.DB()
	req.NoError(err)
	sqlDB.SetMaxOpenConns(1)
	req.NoError(db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.ProductImage{}))

	owner := models.User{Username: "alice", FullName: "Alice", Email: "alice@example.com", Password: "x"}
	req.NoError(db.Create(&owner).Error)

	slug, err := GenerateUniqueProductSlug(db, "Red Shoes")
	req.NoError(err)
	req.Equal("red-shoes", slug)

	req.NoError(db.Create(&models.Product{
		ID:     uuid.New(),
		UserID: owner.ID,
		Title:  "Red Shoes",
		Brand:  "un-branded",
		Slug:   slug,
		Price:  10,
	}).Error)

	second, err := GenerateUniqueProductSlug(db, "Red Shoes")
	req.NoError(err)
	req.NotEqual(slug, second)
	req.True(strings.HasPrefix(second, "red-shoes-"))
}

func Test_GenerateToken(t *testing.T) {
	req := require.New(t)

	first, err := GenerateToken()
	req.NoError(err)
	req.Len(first, 48)

	second, err := GenerateToken()
	req.NoError(err)
	req.NotEqual(first, second)
}
