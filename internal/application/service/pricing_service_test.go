package service

import (
	"net/http"
	"testing"

	"github.com/sangkips/autoquote-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_Preview(t *testing.T) {
	svc := NewPricingService(testDefaults)

	p, err := svc.Preview(&PreviewInput{BasePrice: 100000, PlatePrice: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Input.Quantity)
	assert.InDelta(t, 15, p.Input.VATRatePercent, 0.0001)
	assert.InDelta(t, 115500, p.Rounded.Total, 0.0001)
	assert.Equal(t, "ريال", p.Currency)
	assert.Equal(t, "مائة وخمسة عشر ألف وخمسمائة ريال", p.AmountInWords)
}

func TestPricingService_PreviewTaxInclusive(t *testing.T) {
	svc := NewPricingService(testDefaults)

	p, err := svc.Preview(&PreviewInput{BasePrice: 115, Quantity: 2, PriceIncludesTax: true})
	require.NoError(t, err)
	assert.InDelta(t, 100, p.Rounded.PriceBeforeTaxPerUnit, 0.0001)
	assert.InDelta(t, 200, p.Rounded.Subtotal, 0.0001)
	assert.InDelta(t, 30, p.Rounded.VATAmount, 0.0001)
	assert.InDelta(t, 230, p.Rounded.Total, 0.0001)
}

func TestPricingService_PreviewOverrides(t *testing.T) {
	svc := NewPricingService(testDefaults)
	zero := 0.0

	p, err := svc.Preview(&PreviewInput{BasePrice: 3, VATRate: &zero, Currency: "دينار"})
	require.NoError(t, err)
	assert.InDelta(t, 3, p.Rounded.Total, 0.0001)
	assert.Equal(t, "دينار", p.Currency)
	assert.Equal(t, "ثلاثة دينارات", p.AmountInWords)
}

func TestPricingService_PreviewInvalid(t *testing.T) {
	svc := NewPricingService(testDefaults)
	negative := -5.0

	_, err := svc.Preview(&PreviewInput{BasePrice: 10, VATRate: &negative})
	requireStatus(t, err, http.StatusUnprocessableEntity)
	fields := apperror.GetAppError(err).Errors
	require.Len(t, fields, 1)
	assert.Equal(t, "vat_rate", fields[0].Field)

	_, err = svc.Preview(&PreviewInput{BasePrice: -1})
	requireStatus(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "base_price", apperror.GetAppError(err).Errors[0].Field)
}
