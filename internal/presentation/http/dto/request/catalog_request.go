package request

import "github.com/sangkips/autoquote-api/internal/domain/entity"

// CustomerRequest is used for both create and update. Name is checked by
// the handler on create only.
type CustomerRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=255"`
	NationalID *string `json:"national_id" binding:"omitempty,max=50"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Address    *string `json:"address"`
}

// CompanyRequest carries the writable company fields
type CompanyRequest struct {
	Name           *string                 `json:"name" binding:"omitempty,max=255"`
	NameEnglish    *string                 `json:"name_english" binding:"omitempty,max=255"`
	CRNumber       *string                 `json:"cr_number" binding:"omitempty,max=50"`
	VATNumber      *string                 `json:"vat_number" binding:"omitempty,max=50"`
	Phone          *string                 `json:"phone" binding:"omitempty,max=50"`
	Email          *string                 `json:"email" binding:"omitempty,email"`
	Address        *string                 `json:"address"`
	Logo           *string                 `json:"logo"`
	Stamp          *string                 `json:"stamp"`
	PrimaryColor   *string                 `json:"primary_color" binding:"omitempty,hexcolor"`
	SecondaryColor *string                 `json:"secondary_color" binding:"omitempty,hexcolor"`
	Settings       *entity.CompanySettings `json:"settings"`
	IsActive       *bool                   `json:"is_active"`
}

// VehicleRequest carries the writable vehicle fields
type VehicleRequest struct {
	Make           *string  `json:"make" binding:"omitempty,max=100"`
	Model          *string  `json:"model" binding:"omitempty,max=100"`
	Year           *int     `json:"year" binding:"omitempty,gte=1900,lte=2100"`
	VIN            *string  `json:"vin" binding:"omitempty,max=50"`
	ExteriorColor  *string  `json:"exterior_color" binding:"omitempty,max=50"`
	InteriorColor  *string  `json:"interior_color" binding:"omitempty,max=50"`
	Specifications *string  `json:"specifications"`
	BasePrice      *float64 `json:"base_price"`
	IsActive       *bool    `json:"is_active"`
}

// SalesRepRequest carries the writable sales representative fields
type SalesRepRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
}

// TermRequest carries the writable term fields
type TermRequest struct {
	Text         *string `json:"text"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active"`
}
