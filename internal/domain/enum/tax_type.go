package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// TaxType says whether an entered price already contains VAT
type TaxType int

const (
	TaxTypeExclusive TaxType = 0
	TaxTypeInclusive TaxType = 1
)

// TaxTypeFor maps the "price includes tax" flag to a TaxType.
func TaxTypeFor(includesTax bool) TaxType {
	if includesTax {
		return TaxTypeInclusive
	}
	return TaxTypeExclusive
}

func (t TaxType) String() string {
	names := [...]string{"Exclusive", "Inclusive"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Exclusive"
	}
	return names[t]
}

// IncludesTax reports whether prices of this type are VAT inclusive.
func (t TaxType) IncludesTax() bool {
	return t == TaxTypeInclusive
}

func (t TaxType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var b bool
		if err := json.Unmarshal(data, &b); err == nil {
			*t = TaxTypeFor(b)
			return nil
		}
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TaxType(i)
		return nil
	}
	switch strings.ToLower(str) {
	case "inclusive":
		*t = TaxTypeInclusive
	default:
		*t = TaxTypeExclusive
	}
	return nil
}

func (t TaxType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxType) Scan(value interface{}) error {
	if value == nil {
		*t = TaxTypeExclusive
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxType(v)
	case int:
		*t = TaxType(v)
	}
	return nil
}
