package entries

import (
	"log"

	"github.com/DeliveryPulse/DP-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_entries"); err != nil {
		log.Fatal("Failed to ensure schema app_entries: ", err)
	}

	if err := db.DB.AutoMigrate(&DeliveryEntry{}); err != nil {
		log.Fatal("Failed to auto-migrate entries tables: ", err)
	}
}
