package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the dealership issuing quotations
type Company struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	NameEnglish    *string         `gorm:"size:255" json:"name_english,omitempty"`
	CRNumber       *string         `gorm:"size:50;column:cr_number" json:"cr_number,omitempty"`
	VATNumber      *string         `gorm:"size:50;column:vat_number" json:"vat_number,omitempty"`
	Phone          *string         `gorm:"size:50" json:"phone,omitempty"`
	Email          *string         `gorm:"size:255" json:"email,omitempty"`
	Address        *string         `gorm:"type:text" json:"address,omitempty"`
	Logo           *string         `gorm:"type:text" json:"logo,omitempty"`
	Stamp          *string         `gorm:"type:text" json:"stamp,omitempty"`
	PrimaryColor   *string         `gorm:"size:7" json:"primary_color,omitempty"`
	SecondaryColor *string         `gorm:"size:7" json:"secondary_color,omitempty"`
	Settings       CompanySettings `gorm:"type:text;serializer:json" json:"settings"`
	IsActive       bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new company
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// CompanySettings holds per-company document defaults. Zero values fall back
// to the application configuration.
type CompanySettings struct {
	Currency        string  `json:"currency,omitempty"`
	MinorUnit       string  `json:"minor_unit,omitempty"`
	VATRate         float64 `json:"vat_rate,omitempty"`
	ValidityDays    int     `json:"validity_days,omitempty"`
	QuotationPrefix string  `json:"quotation_prefix,omitempty"`
	Website         string  `json:"website,omitempty"`
	BankName        string  `json:"bank_name,omitempty"`
	IBAN            string  `json:"iban,omitempty"`
}
