package admin

import (
	"log"

	"github.com/DeliveryPulse/DP-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_admin"); err != nil {
		log.Fatal("Failed to ensure schema app_admin: ", err)
	}

	if err := db.DB.AutoMigrate(&ExportAudit{}); err != nil {
		log.Fatal("Failed to auto-migrate admin tables: ", err)
	}
}
