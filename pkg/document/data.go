package document

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sangkips/autoquote-api/pkg/pricing"
)

// Type selects the document title.
type Type string

const (
	TypeQuotation Type = "quotation"
	TypeInvoice   Type = "invoice"
)

// Title returns the Arabic heading for the document type.
func (t Type) Title() string {
	if t == TypeInvoice {
		return "فاتورة"
	}
	return "عرض سعر"
}

// NumberLabel returns the label printed before the document number.
func (t Type) NumberLabel() string {
	if t == TypeInvoice {
		return "رقم الفاتورة"
	}
	return "رقم العرض"
}

// NotSpecified is printed for structurally required fields that are empty.
const NotSpecified = "غير محدد"

// Customer identifies the buyer.
type Customer struct {
	Name       string
	NationalID string
	Phone      string
	Email      string
	Address    string
}

// Vehicle identifies the quoted vehicle.
type Vehicle struct {
	Make           string
	Model          string
	Year           int
	VIN            string
	ExteriorColor  string
	InteriorColor  string
	Specifications string
}

// DisplayName is the short vehicle description used in QR payloads and
// registers.
func (v Vehicle) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Make, v.Model} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if v.Year > 0 {
		parts = append(parts, fmt.Sprint(v.Year))
	}
	if len(parts) == 0 {
		return NotSpecified
	}
	return strings.Join(parts, " ")
}

// Company identifies the issuer and carries its branding. Logo and Stamp
// are data URLs or bare base64 images.
type Company struct {
	Name           string
	CRNumber       string
	VATNumber      string
	Phone          string
	Email          string
	Address        string
	Logo           string
	Stamp          string
	PrimaryColor   string
	SecondaryColor string
}

// SalesRep is the representative who signs the document.
type SalesRep struct {
	Name  string
	Phone string
}

// Term is one terms-and-conditions line.
type Term struct {
	Text         string
	DisplayOrder int
	IsActive     bool
}

// Data is everything the renderer reads. It is never mutated by Render.
type Data struct {
	Type          Type
	Number        string
	IssueDate     time.Time
	ValidUntil    time.Time
	ValidityDays  int
	Customer      Customer
	Vehicle       Vehicle
	Company       Company
	SalesRep      SalesRep
	Pricing       pricing.Input
	Result        pricing.Result
	Currency      string
	AmountInWords string
	Terms         []Term
	Notes         string
}

// ActiveTerms returns the active terms sorted by DisplayOrder. Terms with the
// same order keep their input order.
func ActiveTerms(terms []Term) []Term {
	out := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.IsActive && strings.TrimSpace(t.Text) != "" {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// SpecificationLines splits free-text specifications into at most max
// non-empty lines.
func SpecificationLines(specs string, max int) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(specs, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == max {
			break
		}
	}
	return lines
}

// FallbackNumber builds the document number used when none was assigned.
func FallbackNumber(now time.Time) string {
	s := fmt.Sprint(now.UnixMilli())
	if len(s) > 8 {
		s = s[len(s)-8:]
	}
	return "Q" + s
}

// QRPayload is the human-readable text encoded into the document QR code.
func QRPayload(d Data, total string) string {
	return fmt.Sprintf("العميل: %s | المركبة: %s | الإجمالي: %s",
		orNotSpecified(d.Customer.Name), d.Vehicle.DisplayName(), total)
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotSpecified
	}
	return s
}
