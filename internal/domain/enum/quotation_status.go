package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// QuotationStatus represents where a quotation is in its lifecycle
type QuotationStatus int

const (
	QuotationStatusDraft    QuotationStatus = 0
	QuotationStatusSent     QuotationStatus = 1
	QuotationStatusAccepted QuotationStatus = 2
	QuotationStatusRejected QuotationStatus = 3
	QuotationStatusExpired  QuotationStatus = 4
	QuotationStatusCanceled QuotationStatus = 5
)

var quotationStatusNames = [...]string{"Draft", "Sent", "Accepted", "Rejected", "Expired", "Canceled"}

func (s QuotationStatus) String() string {
	if !s.IsValid() {
		return "Draft"
	}
	return quotationStatusNames[s]
}

// IsValid reports whether s is a known status.
func (s QuotationStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(quotationStatusNames)
}

// IsFinal reports whether no further status change is expected.
func (s QuotationStatus) IsFinal() bool {
	return s == QuotationStatusAccepted || s == QuotationStatusRejected || s == QuotationStatusCanceled
}

// ParseQuotationStatus accepts a status name in any case.
func ParseQuotationStatus(str string) (QuotationStatus, error) {
	for i, name := range quotationStatusNames {
		if strings.EqualFold(name, strings.TrimSpace(str)) {
			return QuotationStatus(i), nil
		}
	}
	return QuotationStatusDraft, fmt.Errorf("unknown quotation status %q", str)
}

func (s QuotationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *QuotationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !QuotationStatus(i).IsValid() {
			return fmt.Errorf("unknown quotation status %d", i)
		}
		*s = QuotationStatus(i)
		return nil
	}
	parsed, err := ParseQuotationStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuotationStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = QuotationStatus(v)
	case int:
		*s = QuotationStatus(v)
	}
	return nil
}
