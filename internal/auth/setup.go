package auth

import (
	"log"

	"github.com/DeliveryPulse/DP-Backend/internal/config"
	"github.com/DeliveryPulse/DP-Backend/internal/db"
)

// store is the package session store, configured by Init.
var store *SessionStore

func Init(cfg config.Config) {
	if err := db.EnsureSchema(db.DB, "app_auth"); err != nil {
		log.Fatal("Failed to ensure schema app_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate auth tables: ", err)
	}

	provider := NewHTTPProvider(cfg.ProviderEndpoint, cfg.ProviderTimeout)
	store = NewSessionStore(provider, cfg.SessionTTL, cfg.IsAdminEmail)
	store.StartSweeper(cfg.SweepInterval)
}

// Store exposes the configured session store for integration tests.
func Store() *SessionStore { return store }
