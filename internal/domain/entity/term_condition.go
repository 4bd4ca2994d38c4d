package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TermCondition is one line printed in the terms section of a document
type TermCondition struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Text         string         `gorm:"type:text;not null" json:"text"`
	DisplayOrder int            `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new term
func (t *TermCondition) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TermCondition model
func (TermCondition) TableName() string {
	return "terms_conditions"
}
