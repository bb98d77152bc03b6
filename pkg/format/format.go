// Package format holds the en-US display helpers shared by the portal views.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout matches the en-US "short month" rendering, e.g. "Oct 14, 2026".
const DateLayout = "Jan 2, 2006"

// FormatCurrency renders amount as US dollars with two fraction digits and
// thousands separators: 1234.5 -> "$1,234.50", -5 -> "-$5.00".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		fixed = fixed[1:]
		if strings.Trim(fixed, "0.") != "" {
			sign = "-"
		}
	}

	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// FormatDate renders t in the portal's date style.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateString parses an RFC 3339 (or plain YYYY-MM-DD) value and renders
// it with FormatDate. Unparseable input is returned unchanged.
func FormatDateString(s string) string {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDate(t)
		}
	}
	return s
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
