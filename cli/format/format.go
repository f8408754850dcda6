// Package format renders values the way the app displays them: Brazilian
// currency and DD/MM/YYYY dates.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency formats a value as Brazilian reais, e.g. 1234.5 → "R$ 1.234,50".
func Currency(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]
	fracPart := parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// CurrencyFromFloat formats a float value as Brazilian reais.
func CurrencyFromFloat(value float64) string {
	return Currency(decimal.NewFromFloat(value))
}

// Date formats a time as DD/MM/YYYY.
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime formats a time as DD/MM/YYYY HH:MM.
func DateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
