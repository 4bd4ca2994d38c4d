package service

import (
	"errors"
	"strings"

	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/sangkips/autoquote-api/pkg/arabicwords"
	"github.com/sangkips/autoquote-api/pkg/pricing"
)

// QuotationDefaults are the configured fallbacks for document fields.
// Company settings override them field by field.
type QuotationDefaults struct {
	Currency        string
	MinorUnit       string
	VATRate         float64
	ValidityDays    int
	ReferencePrefix string
}

func (d QuotationDefaults) units() arabicwords.Units {
	return arabicwords.Units{Major: d.Currency, Minor: d.MinorUnit}
}

// PricingService computes quotation prices without storing anything
type PricingService struct {
	defaults QuotationDefaults
}

// NewPricingService creates a new pricing service
func NewPricingService(defaults QuotationDefaults) *PricingService {
	return &PricingService{defaults: defaults}
}

// PreviewInput is a pricing request. A nil VATRate uses the default rate and
// a zero quantity means one vehicle.
type PreviewInput struct {
	BasePrice        float64
	Quantity         int
	VATRate          *float64
	PlatePrice       float64
	PriceIncludesTax bool
	Currency         string
}

// PricingPreview is the computed breakdown with the total spelled out
type PricingPreview struct {
	Input         pricing.Input  `json:"input"`
	Result        pricing.Result `json:"result"`
	Rounded       pricing.Result `json:"rounded"`
	Currency      string         `json:"currency"`
	AmountInWords string         `json:"amount_in_words"`
}

// Preview validates and computes a pricing breakdown
func (s *PricingService) Preview(input *PreviewInput) (*PricingPreview, error) {
	in := pricing.Input{
		BasePrice:        input.BasePrice,
		Quantity:         input.Quantity,
		VATRatePercent:   s.defaults.VATRate,
		PlatePrice:       input.PlatePrice,
		PriceIncludesTax: input.PriceIncludesTax,
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if input.VATRate != nil {
		in.VATRatePercent = *input.VATRate
	}
	if err := in.Validate(); err != nil {
		return nil, pricingError(err)
	}

	units := s.defaults.units()
	if c := strings.TrimSpace(input.Currency); c != "" {
		units.Major = c
	}

	res := pricing.Compute(in)
	return &PricingPreview{
		Input:         in,
		Result:        res,
		Rounded:       roundResult(res),
		Currency:      currencyName(units.Major),
		AmountInWords: arabicwords.FormatAmountWithUnits(pricing.Round2(res.Total), units),
	}, nil
}

func roundResult(r pricing.Result) pricing.Result {
	return pricing.Result{
		PriceBeforeTaxPerUnit: pricing.Round2(r.PriceBeforeTaxPerUnit),
		Subtotal:              pricing.Round2(r.Subtotal),
		VATAmount:             pricing.Round2(r.VATAmount),
		Total:                 pricing.Round2(r.Total),
	}
}

func currencyName(c string) string {
	if c == "" {
		return arabicwords.DefaultCurrency
	}
	return c
}

// pricingError turns a pricing validation failure into a 422.
func pricingError(err error) error {
	if errors.Is(err, pricing.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), pricing.ErrInvalidInput.Error()+": ")
		field, message, ok := strings.Cut(msg, " ")
		if !ok {
			return apperror.NewUnprocessableError(msg)
		}
		if field == "vat_rate_percent" {
			field = "vat_rate"
		}
		return apperror.NewValidationError([]apperror.FieldError{{Field: field, Message: message}})
	}
	return err
}
