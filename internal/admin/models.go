package admin

import (
	"time"

	"github.com/lib/pq"
)

// ExportAudit records one admin data export: who asked, which sections were
// included, and how large the snapshot was.
type ExportAudit struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	RequestedBy string         `gorm:"not null;index" json:"requested_by"`
	Sections    pq.StringArray `gorm:"type:text[]" json:"sections"`
	EntryCount  int            `json:"entry_count"`
	UserCount   int            `json:"user_count"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (ExportAudit) TableName() string { return "app_admin.export_audits" }
