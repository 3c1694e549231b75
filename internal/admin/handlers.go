package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/auth"
	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/DeliveryPulse/DP-Backend/internal/entries"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllEntriesHandler returns every delivery entry, newest first.
func AllEntriesHandler(w http.ResponseWriter, r *http.Request) {
	var list []entries.DeliveryEntry
	if err := db.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// UsersHandler returns all users in collated display-name order.
func UsersHandler(w http.ResponseWriter, r *http.Request) {
	var users []auth.User
	if err := db.DB.Find(&users).Error; err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(users, func(i, j int) bool {
		return c.CompareString(users[i].Name, users[j].Name) < 0
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// ExportHandler returns a JSON snapshot of users and entries and leaves an
// audit row behind.
func ExportHandler(w http.ResponseWriter, r *http.Request) {
	requester, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var list []entries.DeliveryEntry
	if err := db.DB.Find(&list).Error; err != nil {
		http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
		return
	}
	var users []auth.User
	if err := db.DB.Find(&users).Error; err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	audit := ExportAudit{
		ID:          uuid.NewString(),
		RequestedBy: requester.UserID,
		Sections:    pq.StringArray{"entries", "users"},
		EntryCount:  len(list),
		UserCount:   len(users),
	}
	// Export still succeeds if the audit insert fails; the failure is logged.
	if err := db.DB.Create(&audit).Error; err != nil {
		log.Printf("[admin] export audit insert failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"export_date": time.Now().UTC().Format(time.RFC3339),
		"entries":     list,
		"users":       users,
	})
}
