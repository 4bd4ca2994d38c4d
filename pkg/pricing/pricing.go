// Package pricing computes the totals of a vehicle quotation.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// DefaultVATRatePercent is the VAT rate applied when none is configured.
const DefaultVATRatePercent = 15.0

// ErrInvalidInput is returned by Validate for out-of-range inputs.
var ErrInvalidInput = errors.New("invalid pricing input")

// Input holds the raw pricing fields of a quotation.
type Input struct {
	BasePrice        float64 `json:"base_price"`
	Quantity         int     `json:"quantity"`
	VATRatePercent   float64 `json:"vat_rate_percent"`
	PlatePrice       float64 `json:"plate_price"`
	PriceIncludesTax bool    `json:"price_includes_tax"`
}

// Result is the pricing breakdown derived from an Input. All four fields are
// always computed together and are never rounded.
type Result struct {
	PriceBeforeTaxPerUnit float64 `json:"price_before_tax_per_unit"`
	Subtotal              float64 `json:"subtotal"`
	VATAmount             float64 `json:"vat_amount"`
	Total                 float64 `json:"total"`
}

// Validate reports the first field that breaks the input invariants.
func (in Input) Validate() error {
	switch {
	case invalid(in.BasePrice):
		return fmt.Errorf("%w: base_price must be a non-negative number", ErrInvalidInput)
	case in.Quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	case invalid(in.VATRatePercent):
		return fmt.Errorf("%w: vat_rate_percent must be a non-negative number", ErrInvalidInput)
	case invalid(in.PlatePrice):
		return fmt.Errorf("%w: plate_price must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

func invalid(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}

// Compute derives the pricing breakdown. When PriceIncludesTax is set the
// base price already contains VAT and the pre-tax unit price is backed out.
// Plate fees are added after VAT and are not taxed.
func Compute(in Input) Result {
	rate := in.VATRatePercent / 100

	unit := in.BasePrice
	if in.PriceIncludesTax {
		unit = in.BasePrice / (1 + rate)
	}

	subtotal := unit * float64(in.Quantity)
	vat := subtotal * rate

	return Result{
		PriceBeforeTaxPerUnit: unit,
		Subtotal:              subtotal,
		VATAmount:             vat,
		Total:                 subtotal + vat + in.PlatePrice,
	}
}

// Round2 rounds v to two decimals, half away from zero. Use it only when
// presenting a value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
