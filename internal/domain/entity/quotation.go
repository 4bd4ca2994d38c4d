package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/autoquote-api/internal/domain/enum"
	"github.com/sangkips/autoquote-api/pkg/pricing"
	"gorm.io/gorm"
)

// Quotation is a priced offer for one vehicle. Customer, vehicle and sales
// representative names are copied at creation so printed documents stay
// stable when the referenced records change.
type Quotation struct {
	ID                     uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID                 uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Reference              string               `gorm:"size:100;unique;not null" json:"reference"`
	DocumentType           enum.DocumentType    `gorm:"size:20;not null;default:'quotation'" json:"document_type"`
	Status                 enum.QuotationStatus `gorm:"default:0;index" json:"status"`
	IssueDate              time.Time            `gorm:"type:date;not null;index" json:"issue_date"`
	ValidUntil             *time.Time           `gorm:"type:date" json:"valid_until,omitempty"`
	ValidityDays           int                  `gorm:"default:0" json:"validity_days"`
	CompanyID              *uuid.UUID           `gorm:"type:uuid;index" json:"company_id,omitempty"`
	CustomerID             *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	VehicleID              *uuid.UUID           `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	SalesRepID             *uuid.UUID           `gorm:"type:uuid;index" json:"sales_rep_id,omitempty"`
	CustomizationProfileID *uuid.UUID           `gorm:"type:uuid" json:"customization_profile_id,omitempty"`
	CustomerName           string               `gorm:"size:255" json:"customer_name"`
	VehicleName            string               `gorm:"size:255" json:"vehicle_name"`
	SalesRepName           string               `gorm:"size:255" json:"sales_rep_name"`
	BasePrice              float64              `gorm:"type:decimal(15,2);not null" json:"base_price"`
	Quantity               int                  `gorm:"not null;default:1" json:"quantity"`
	VATRate                float64              `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	PlatePrice             float64              `gorm:"type:decimal(15,2);default:0" json:"plate_price"`
	TaxType                enum.TaxType         `gorm:"default:0" json:"tax_type"`
	PriceBeforeTax         float64              `gorm:"type:decimal(15,2);default:0" json:"price_before_tax"`
	Subtotal               float64              `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	VATAmount              float64              `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	TotalAmount            float64              `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Currency               string               `gorm:"size:50" json:"currency"`
	AmountInWords          string               `gorm:"type:text" json:"amount_in_words"`
	Notes                  *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
	DeletedAt              gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User     User                 `gorm:"foreignKey:UserID" json:"-"`
	Company  *Company             `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Customer *Customer            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  *Vehicle             `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	SalesRep *SalesRepresentative `gorm:"foreignKey:SalesRepID" json:"sales_rep,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.DocumentType == "" {
		q.DocumentType = enum.DocumentTypeQuotation
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// PricingInput returns the stored pricing inputs.
func (q *Quotation) PricingInput() pricing.Input {
	return pricing.Input{
		BasePrice:        q.BasePrice,
		Quantity:         q.Quantity,
		VATRatePercent:   q.VATRate,
		PlatePrice:       q.PlatePrice,
		PriceIncludesTax: q.TaxType.IncludesTax(),
	}
}

// SetPricing stores in together with its computed result. The four result
// fields are always written as a set.
func (q *Quotation) SetPricing(in pricing.Input, res pricing.Result) {
	q.BasePrice = in.BasePrice
	q.Quantity = in.Quantity
	q.VATRate = in.VATRatePercent
	q.PlatePrice = in.PlatePrice
	q.TaxType = enum.TaxTypeFor(in.PriceIncludesTax)

	q.PriceBeforeTax = res.PriceBeforeTaxPerUnit
	q.Subtotal = res.Subtotal
	q.VATAmount = res.VATAmount
	q.TotalAmount = res.Total
}

// PricingResult returns the persisted computation.
func (q *Quotation) PricingResult() pricing.Result {
	return pricing.Result{
		PriceBeforeTaxPerUnit: q.PriceBeforeTax,
		Subtotal:              q.Subtotal,
		VATAmount:             q.VATAmount,
		Total:                 q.TotalAmount,
	}
}
