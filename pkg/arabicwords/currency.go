package arabicwords

import (
	"math"
	"strings"
)

const (
	// DefaultCurrency is the major unit used when none is given.
	DefaultCurrency = "ريال"
	// DefaultMinorUnit is the hundredth of DefaultCurrency.
	DefaultMinorUnit = "هللة"
	// Closing is the phrase documents append after the amount in words.
	Closing = "فقط لا غير"
)

// Units names the major and minor currency units of an amount.
type Units struct {
	Major string
	Minor string
}

// FormatAmount spells amount in the given currency with halala cents.
// An empty currency name falls back to DefaultCurrency.
func FormatAmount(amount float64, currencyName string) string {
	return FormatAmountWithUnits(amount, Units{Major: currencyName, Minor: DefaultMinorUnit})
}

// FormatAmountWithUnits spells amount using the given units. The amount is
// rounded to whole cents first, so 9.995 reads as ten units.
func FormatAmountWithUnits(amount float64, units Units) string {
	if units.Major == "" {
		units.Major = DefaultCurrency
	}
	if units.Minor == "" {
		units.Minor = DefaultMinorUnit
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	negative := amount < 0
	totalCents := int64(math.Round(math.Abs(amount) * 100))
	integerPart := totalCents / 100
	decimalPart := totalCents % 100

	if integerPart == 0 && decimalPart == 0 {
		return Zero + " " + units.Major
	}

	var b strings.Builder
	if negative {
		b.WriteString(Negative + " ")
	}
	if integerPart > 0 {
		b.WriteString(ToWords(integerPart))
		b.WriteString(" ")
		b.WriteString(agree(units.Major, integerPart))
	}
	if decimalPart > 0 {
		if integerPart > 0 {
			b.WriteString(joiner)
		}
		b.WriteString(ToWords(decimalPart))
		b.WriteString(" ")
		b.WriteString(agree(units.Minor, decimalPart))
	}
	return b.String()
}

// WithClosing appends the closing phrase to an amount in words.
func WithClosing(words string) string {
	return words + " " + Closing
}

// agree returns noun in the form Arabic numeral agreement requires for count:
// singular for 1 and above 10, dual for 2, plural for 3 to 10.
func agree(noun string, count int64) string {
	switch {
	case count == 2:
		if stem, ok := strings.CutSuffix(noun, "ة"); ok {
			return stem + "تان"
		}
		return noun + "ان"
	case count >= 3 && count <= 10:
		if stem, ok := strings.CutSuffix(noun, "ة"); ok {
			return stem + "ات"
		}
		return noun + "ات"
	default:
		return noun
	}
}
