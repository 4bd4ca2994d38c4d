package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotationStatus(t *testing.T) {
	tests := []struct {
		in   string
		want QuotationStatus
		ok   bool
	}{
		{"draft", QuotationStatusDraft, true},
		{"SENT", QuotationStatusSent, true},
		{" Accepted ", QuotationStatusAccepted, true},
		{"expired", QuotationStatusExpired, true},
		{"canceled", QuotationStatusCanceled, true},
		{"cancelled", QuotationStatusDraft, false},
		{"", QuotationStatusDraft, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuotationStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, err == nil)
		})
	}
}

func TestQuotationStatusJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Status QuotationStatus `json:"status"`
	}{QuotationStatusRejected})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Rejected"}`, string(raw))

	var s QuotationStatus
	require.NoError(t, json.Unmarshal([]byte(`"sent"`), &s))
	assert.Equal(t, QuotationStatusSent, s)
	require.NoError(t, json.Unmarshal([]byte(`2`), &s))
	assert.Equal(t, QuotationStatusAccepted, s)
	assert.Error(t, json.Unmarshal([]byte(`9`), &s))
	assert.Error(t, json.Unmarshal([]byte(`"lost"`), &s))

	assert.True(t, QuotationStatusCanceled.IsFinal())
	assert.False(t, QuotationStatusExpired.IsFinal())
	assert.Equal(t, "Draft", QuotationStatus(42).String())
}

func TestDocumentTypeJSON(t *testing.T) {
	var d DocumentType
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.Equal(t, DocumentTypeQuotation, d)
	require.NoError(t, json.Unmarshal([]byte(`"invoice"`), &d))
	assert.Equal(t, DocumentTypeInvoice, d)
	assert.Error(t, json.Unmarshal([]byte(`"receipt"`), &d))
}

func TestTaxType(t *testing.T) {
	assert.Equal(t, TaxTypeInclusive, TaxTypeFor(true))
	assert.True(t, TaxTypeFor(true).IncludesTax())
	assert.False(t, TaxTypeFor(false).IncludesTax())

	var tt TaxType
	require.NoError(t, json.Unmarshal([]byte(`true`), &tt))
	assert.Equal(t, TaxTypeInclusive, tt)
	require.NoError(t, json.Unmarshal([]byte(`"exclusive"`), &tt))
	assert.Equal(t, TaxTypeExclusive, tt)

	raw, err := json.Marshal(TaxTypeInclusive)
	require.NoError(t, err)
	assert.Equal(t, `"Inclusive"`, string(raw))
}

func TestUserRole(t *testing.T) {
	assert.True(t, UserRoleAdmin.IsValid())
	assert.False(t, UserRole("owner").IsValid())

	var r UserRole
	assert.Error(t, json.Unmarshal([]byte(`"owner"`), &r))
	require.NoError(t, r.Scan(nil))
	assert.Equal(t, UserRoleSales, r)
}
