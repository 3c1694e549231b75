package entries

import "time"

// DateLayout is the calendar-date format entries are keyed by.
const DateLayout = "2006-01-02"

// DeliveryEntry is one day's logistics record for its owning user.
// PendingAmount is conceptually challan minus delivered, but it is stored as
// supplied — the fields are independent inputs and no cross-field check runs.
type DeliveryEntry struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"not null;index:idx_entries_owner_date" json:"user_id"`
	Date             string    `gorm:"not null;index:idx_entries_owner_date;index" json:"date"`
	ChallanAmount    float64   `gorm:"not null" json:"challan_amount"`
	DeliveredAmount  float64   `gorm:"not null" json:"delivered_amount"`
	PendingAmount    float64   `gorm:"not null" json:"pending_amount"`
	VehicleRequired  int       `gorm:"not null" json:"vehicle_required"`
	VehicleConfirmed int       `gorm:"not null" json:"vehicle_confirmed"`
	VehicleMissing   int       `gorm:"not null" json:"vehicle_missing"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (DeliveryEntry) TableName() string { return "app_entries.delivery_entries" }
