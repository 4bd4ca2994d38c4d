package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/autoquote-api/pkg/pricing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const dateLayout = "2006/01/02"

// Formatter renders numbers and dates for display.
type Formatter struct {
	printer      *message.Printer
	arabicDigits bool
}

// NewFormatter returns a formatter with thousands grouping. When
// arabicDigits is set, ASCII digits are replaced with Arabic-Indic ones.
func NewFormatter(arabicDigits bool) *Formatter {
	return &Formatter{
		printer:      message.NewPrinter(language.English),
		arabicDigits: arabicDigits,
	}
}

// Money formats v with grouping and exactly two decimals.
func (f *Formatter) Money(v float64) string {
	s := f.printer.Sprint(number.Decimal(pricing.Round2(v), number.Scale(2)))
	return f.digits(s)
}

// Integer formats n with grouping.
func (f *Formatter) Integer(n int) string {
	return f.digits(f.printer.Sprint(number.Decimal(n)))
}

// Percent formats a rate without trailing zeros, e.g. 15 or 12.5.
func (f *Formatter) Percent(rate float64) string {
	return f.digits(strconv.FormatFloat(rate, 'f', -1, 64)) + "%"
}

// Date formats t as yyyy/mm/dd.
func (f *Formatter) Date(t time.Time) string {
	return f.digits(t.Format(dateLayout))
}

func (f *Formatter) digits(s string) string {
	if !f.arabicDigits {
		return s
	}
	return ToArabicDigits(s)
}

// ToArabicDigits replaces ASCII digits with Arabic-Indic digits.
func ToArabicDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '٠' + (r - '0')
		}
		return r
	}, s)
}
