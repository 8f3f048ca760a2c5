package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedTemplate is one entry of the named template library
type SavedTemplate struct {
	Name         string    `gorm:"primaryKey;type:varchar(255)" json:"name"`
	FriendlyName string    `gorm:"type:varchar(255)" json:"friendly_name"`
	Snapshot     string    `gorm:"type:text;not null" json:"snapshot"` // collector-shaped JSON
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SavedTemplate) TableName() string {
	return "saved_templates"
}

// Export formats
const (
	FormatTwilio         = "twilio"
	FormatTwilioNumbered = "twilio_numbered"
	FormatJaiminho       = "jaiminho"
)

// ExportRecord is a generated document kept for download
type ExportRecord struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Format        string    `gorm:"type:varchar(20);index" json:"format"`
	FriendlyName  string    `gorm:"type:varchar(255)" json:"friendly_name"`
	CardCount     int       `json:"card_count"`
	VariableCount int       `json:"variable_count"`
	Document      string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}

func (r *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
