package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DocumentType is the kind of document a quotation record prints as
type DocumentType string

const (
	DocumentTypeQuotation DocumentType = "quotation"
	DocumentTypeInvoice   DocumentType = "invoice"
)

func (t DocumentType) String() string {
	return string(t)
}

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeQuotation || t == DocumentTypeInvoice
}

func (t DocumentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *DocumentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = DocumentTypeQuotation
		return nil
	}
	if !DocumentType(str).IsValid() {
		return fmt.Errorf("unknown document type %q", str)
	}
	*t = DocumentType(str)
	return nil
}

func (t DocumentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *DocumentType) Scan(value interface{}) error {
	if value == nil {
		*t = DocumentTypeQuotation
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = DocumentType(v)
	case []byte:
		*t = DocumentType(string(v))
	}
	return nil
}
