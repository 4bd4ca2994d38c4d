// Package arabicwords spells integers and monetary amounts as Arabic text,
// the legal "amount in words" convention used on commercial documents.
package arabicwords

import "strings"

const (
	// Zero is the word for 0.
	Zero = "صفر"
	// Negative prefixes negative numbers.
	Negative = "سالب"

	joiner = " و"
)

var ones = [...]string{
	"", "واحد", "اثنان", "ثلاثة", "أربعة", "خمسة", "ستة", "سبعة", "ثمانية", "تسعة",
	"عشرة", "أحد عشر", "اثنا عشر", "ثلاثة عشر", "أربعة عشر", "خمسة عشر",
	"ستة عشر", "سبعة عشر", "ثمانية عشر", "تسعة عشر",
}

var tens = [...]string{
	"", "", "عشرون", "ثلاثون", "أربعون", "خمسون", "ستون", "سبعون", "ثمانون", "تسعون",
}

var hundreds = [...]string{
	"", "مائة", "مائتان", "ثلاثمائة", "أربعمائة", "خمسمائة",
	"ستمائة", "سبعمائة", "ثمانمائة", "تسعمائة",
}

// scales[i] names the group 1000^i. Index 0 (units) has no word.
var scales = [...]string{"", "ألف", "مليون", "مليار", "تريليون", "كوادريليون", "كوينتليون"}

// ToWords returns the Arabic cardinal phrase for n.
func ToWords(n int64) string {
	if n == 0 {
		return Zero
	}
	if n < 0 {
		// Negate through uint64 so math.MinInt64 does not overflow.
		return Negative + " " + spell(uint64(-(n + 1))+1)
	}
	return spell(uint64(n))
}

func spell(n uint64) string {
	var groups []string
	for scale := 0; n > 0; scale++ {
		group := int(n % 1000)
		n /= 1000
		if group == 0 {
			continue
		}
		groups = append(groups, scaleGroup(group, scale))
	}

	// Groups were collected least significant first.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, joiner)
}

// scaleGroup renders one non-zero group of three digits with its scale word.
// Only the thousands group gets Arabic dual and plural forms.
func scaleGroup(group, scale int) string {
	words := belowThousand(group)
	switch {
	case scale == 0:
		return words
	case scale == 1:
		switch {
		case group == 1:
			return "ألف"
		case group == 2:
			return "ألفان"
		case group <= 10:
			return words + " آلاف"
		default:
			return words + " ألف"
		}
	default:
		return words + " " + scales[scale]
	}
}

func belowThousand(n int) string {
	if n < 100 {
		return belowHundred(n)
	}
	h := hundreds[n/100]
	if rest := n % 100; rest > 0 {
		return h + joiner + belowHundred(rest)
	}
	return h
}

func belowHundred(n int) string {
	if n < 20 {
		return ones[n]
	}
	t := tens[n/10]
	if unit := n % 10; unit > 0 {
		return ones[unit] + joiner + t
	}
	return t
}
