// Package words spells out rupee amounts in the Indian numbering system
// (crore, lakh, thousand) for the "In words" line of a tax invoice.
package words

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

var hundred = decimal.NewFromInt(100)

// Rupees converts an amount to words, e.g. 150.50 becomes
// "One Hundred And Fifty Rupees And Fifty Paise Only".
// The amount is rounded to whole paise first.
func Rupees(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "Zero Rupees Only"
	}

	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}

	amount = amount.Round(2)
	rupees := amount.Floor()
	paise := amount.Sub(rupees).Mul(hundred).IntPart()

	var b strings.Builder
	b.WriteString(prefix)
	if rupees.IsZero() {
		b.WriteString("Zero")
	} else {
		b.WriteString(Integer(rupees.IntPart()))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" And ")
		b.WriteString(belowThousand(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// Integer spells a non-negative integer using crore/lakh/thousand grouping.
// Crore counts of a thousand or more are spelled recursively.
func Integer(n int64) string {
	if n <= 0 {
		return ""
	}

	var parts []string
	if n >= crore {
		parts = append(parts, Integer(n/crore)+" Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, belowThousand(n/lakh)+" Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, belowThousand(n/thousand)+" Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	switch {
	case n <= 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	default:
		if n%100 == 0 {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred And " + belowThousand(n%100)
	}
}
