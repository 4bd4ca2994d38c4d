package request

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// QuotationRequest represents a quotation create or update
type QuotationRequest struct {
	DocumentType           string     `json:"document_type" binding:"omitempty,oneof=quotation invoice"`
	CompanyID              *uuid.UUID `json:"company_id"`
	CustomerID             *uuid.UUID `json:"customer_id"`
	VehicleID              *uuid.UUID `json:"vehicle_id"`
	SalesRepID             *uuid.UUID `json:"sales_rep_id"`
	CustomizationProfileID *uuid.UUID `json:"customization_profile_id"`
	CustomerName           *string    `json:"customer_name" binding:"omitempty,max=255"`
	IssueDate              *string    `json:"issue_date"`
	ValidityDays           *int       `json:"validity_days" binding:"omitempty,gte=0,lte=365"`
	BasePrice              *float64   `json:"base_price"`
	Quantity               *int       `json:"quantity" binding:"omitempty,gte=1"`
	VATRate                *float64   `json:"vat_rate"`
	PlatePrice             *float64   `json:"plate_price"`
	PriceIncludesTax       *bool      `json:"price_includes_tax"`
	Notes                  *string    `json:"notes"`
}

// ParseIssueDate returns the issue date, or nil when none was sent
func (r *QuotationRequest) ParseIssueDate() (*time.Time, error) {
	if r.IssueDate == nil || *r.IssueDate == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *r.IssueDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatusRequest represents a quotation status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// EmailQuotationRequest names who receives an emailed quotation. An empty
// To uses the customer's address.
type EmailQuotationRequest struct {
	To      string `json:"to" binding:"omitempty,email"`
	Subject string `json:"subject" binding:"omitempty,max=255"`
	Note    string `json:"note" binding:"omitempty,max=2000"`
}

// PricingPreviewRequest represents a pricing calculation without saving
type PricingPreviewRequest struct {
	BasePrice        float64  `json:"base_price"`
	Quantity         int      `json:"quantity"`
	VATRate          *float64 `json:"vat_rate"`
	PlatePrice       float64  `json:"plate_price"`
	PriceIncludesTax bool     `json:"price_includes_tax"`
	Currency         string   `json:"currency" binding:"omitempty,max=50"`
}
