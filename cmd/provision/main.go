package main

import (
	"log"

	"github.com/kamaucodes/marketplace_api/database"
)

// One-shot provisioning for deployment scripts: migrate the schema and seed
// the admin account. The API process itself never does either.
func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	log.Println("✅ Provisioning complete")
}
