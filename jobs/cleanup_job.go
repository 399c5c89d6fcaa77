package jobs

import (
	"log"
	"time"

	"github.com/kamaucodes/marketplace_api/database"
	"github.com/kamaucodes/marketplace_api/models"
)

// PurgeExpiredTokens clears verification and reset tokens whose links can no
// longer be used, so stale tokens don't pile up under the unique indexes.
func PurgeExpiredTokens() {
	log.Println("Running job: PurgeExpiredTokens...")

	now := time.Now()

	result := database.DB.Model(&models.User{}).
		Where("verification_token IS NOT NULL AND verification_token_expires_at < ?", now).
		Updates(map[string]interface{}{
			"verification_token":            nil,
			"verification_token_expires_at": nil,
		})
	if result.Error != nil {
		log.Printf("Error purging verification tokens: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Purged %d expired verification tokens", result.RowsAffected)
	}

	result = database.DB.Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_token_expires_at < ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if result.Error != nil {
		log.Printf("Error purging reset tokens: %v", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("Purged %d expired reset tokens", result.RowsAffected)
	}
}
