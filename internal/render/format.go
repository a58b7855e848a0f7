package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006, 3:04:05 PM"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FileName derives "<prefix>-<number>_<customer>.pdf" from a formatted
// sequence number such as "#00001". Non-alphanumerics in the customer
// name become underscores; an empty name becomes "Customer".
func FileName(prefix, invoiceNumber, customerName string) string {
	number := strings.TrimPrefix(strings.TrimSpace(invoiceNumber), "#")
	name := "Customer"
	if customerName != "" {
		name = nonAlphanumeric.ReplaceAllString(customerName, "_")
	}
	return fmt.Sprintf("%s-%s_%s.pdf", prefix, number, name)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deduction(d decimal.Decimal) string {
	return "-" + d.StringFixed(2)
}

func km(n int64) string {
	return fmt.Sprintf("%d km", n)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

func formatDateTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format(dateTimeLayout)
}

// latin1 replaces runes outside the core-font code page.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xff {
			return '?'
		}
		return r
	}, s)
}
