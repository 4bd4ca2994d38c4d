package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/pkg/document"
	"gorm.io/gorm"
)

// CustomizationProfile is a stored set of document layout parameters. At
// most one profile is the default.
type CustomizationProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	IsDefault bool      `gorm:"not null;default:false;index" json:"is_default"`

	document.Profile `gorm:"embedded"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new profile
func (p *CustomizationProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CustomizationProfile model
func (CustomizationProfile) TableName() string {
	return "customization_profiles"
}

// Resolved returns the stored parameters with unset values replaced by the
// built-in defaults.
func (p *CustomizationProfile) Resolved() *document.Profile {
	if p == nil {
		return document.DefaultProfile()
	}
	stored := p.Profile
	return stored.Normalize()
}
