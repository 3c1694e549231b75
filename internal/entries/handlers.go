package entries

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/auth"
	"github.com/DeliveryPulse/DP-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type entryInput struct {
	Date             string  `json:"date"`
	ChallanAmount    float64 `json:"challan_amount"`
	DeliveredAmount  float64 `json:"delivered_amount"`
	PendingAmount    float64 `json:"pending_amount"`
	VehicleRequired  int     `json:"vehicle_required"`
	VehicleConfirmed int     `json:"vehicle_confirmed"`
	VehicleMissing   int     `json:"vehicle_missing"`
	Notes            string  `json:"notes"`
}

// entryPatch carries only the fields present in an update payload.
type entryPatch struct {
	Date             *string  `json:"date"`
	ChallanAmount    *float64 `json:"challan_amount"`
	DeliveredAmount  *float64 `json:"delivered_amount"`
	PendingAmount    *float64 `json:"pending_amount"`
	VehicleRequired  *int     `json:"vehicle_required"`
	VehicleConfirmed *int     `json:"vehicle_confirmed"`
	VehicleMissing   *int     `json:"vehicle_missing"`
	Notes            *string  `json:"notes"`
}

func validateInput(in entryInput) error {
	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return fmt.Errorf("date must be formatted %s", DateLayout)
	}
	if in.ChallanAmount < 0 || in.DeliveredAmount < 0 || in.PendingAmount < 0 {
		return fmt.Errorf("amounts must be non-negative")
	}
	if in.VehicleRequired < 0 || in.VehicleConfirmed < 0 || in.VehicleMissing < 0 {
		return fmt.Errorf("vehicle counts must be non-negative")
	}
	return nil
}

func validatePatch(p entryPatch) error {
	if p.Date != nil {
		if _, err := time.Parse(DateLayout, *p.Date); err != nil {
			return fmt.Errorf("date must be formatted %s", DateLayout)
		}
	}
	for _, v := range []*float64{p.ChallanAmount, p.DeliveredAmount, p.PendingAmount} {
		if v != nil && *v < 0 {
			return fmt.Errorf("amounts must be non-negative")
		}
	}
	for _, v := range []*int{p.VehicleRequired, p.VehicleConfirmed, p.VehicleMissing} {
		if v != nil && *v < 0 {
			return fmt.Errorf("vehicle counts must be non-negative")
		}
	}
	return nil
}

// loadEntry resolves an entry id for user: ErrNotFound if absent, then
// ErrForbidden if user may not write it.
func loadEntry(entryID string, user auth.User) (DeliveryEntry, error) {
	var entry DeliveryEntry
	if err := db.DB.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryEntry{}, ErrNotFound
		}
		return DeliveryEntry{}, err
	}
	if err := AuthorizeWrite(user, entry.UserID); err != nil {
		return DeliveryEntry{}, err
	}
	return entry, nil
}

// writeAccessError maps the access taxonomy onto HTTP. The forbidden body is
// deliberately generic: it names nothing about the entry.
func writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Entry not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "Access denied", http.StatusForbidden)
	default:
		http.Error(w, "DB error", http.StatusInternalServerError)
	}
}

// CreateEntryHandler stamps the new entry with the session user's id; any
// owner field in the payload is ignored.
func CreateEntryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var input entryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateInput(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry := DeliveryEntry{
		ID:               uuid.NewString(),
		UserID:           user.UserID,
		Date:             input.Date,
		ChallanAmount:    input.ChallanAmount,
		DeliveredAmount:  input.DeliveredAmount,
		PendingAmount:    input.PendingAmount,
		VehicleRequired:  input.VehicleRequired,
		VehicleConfirmed: input.VehicleConfirmed,
		VehicleMissing:   input.VehicleMissing,
		Notes:            input.Notes,
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// ListEntriesHandler returns the caller's visible entries, newest date first.
func ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var list []DeliveryEntry
	scope := ScopeFor(user)
	if err := scope.Apply(db.DB.Model(&DeliveryEntry{})).
		Order("date DESC").
		Find(&list).Error; err != nil {
		http.Error(w, "Failed to fetch entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func GetEntryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	entry, err := loadEntry(chi.URLParam(r, "entry_id"), user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// UpdateEntryHandler applies only the fields present in the payload. The
// write is a single statement; concurrent edits resolve last-write-wins.
func UpdateEntryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	entry, err := loadEntry(chi.URLParam(r, "entry_id"), user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	var patch entryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validatePatch(patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.ChallanAmount != nil {
		updates["challan_amount"] = *patch.ChallanAmount
	}
	if patch.DeliveredAmount != nil {
		updates["delivered_amount"] = *patch.DeliveredAmount
	}
	if patch.PendingAmount != nil {
		updates["pending_amount"] = *patch.PendingAmount
	}
	if patch.VehicleRequired != nil {
		updates["vehicle_required"] = *patch.VehicleRequired
	}
	if patch.VehicleConfirmed != nil {
		updates["vehicle_confirmed"] = *patch.VehicleConfirmed
	}
	if patch.VehicleMissing != nil {
		updates["vehicle_missing"] = *patch.VehicleMissing
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&entry).Updates(updates).Error; err != nil {
			http.Error(w, "Failed to update entry", http.StatusInternalServerError)
			return
		}
	}

	if err := db.DB.First(&entry, "id = ?", entry.ID).Error; err != nil {
		http.Error(w, "Failed to reload entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func DeleteEntryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.CurrentUser(r)
	if err != nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	entry, err := loadEntry(chi.URLParam(r, "entry_id"), user)
	if err != nil {
		writeAccessError(w, err)
		return
	}

	if err := db.DB.Delete(&entry).Error; err != nil {
		http.Error(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Entry deleted successfully")
}
