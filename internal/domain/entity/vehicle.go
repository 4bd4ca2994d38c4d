package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is a model in the dealership catalogue
type Vehicle struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Make           string         `gorm:"size:100;not null;index" json:"make"`
	Model          string         `gorm:"size:100;not null" json:"model"`
	Year           int            `gorm:"not null" json:"year"`
	VIN            *string        `gorm:"size:50;column:vin" json:"vin,omitempty"`
	ExteriorColor  *string        `gorm:"size:100" json:"exterior_color,omitempty"`
	InteriorColor  *string        `gorm:"size:100" json:"interior_color,omitempty"`
	Specifications *string        `gorm:"type:text" json:"specifications,omitempty"`
	BasePrice      float64        `gorm:"type:decimal(15,2);not null;default:0" json:"base_price"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}
