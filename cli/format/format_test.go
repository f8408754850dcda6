package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tcs := []struct {
		value string
		want  string
	}{
		{"0", "R$ 0,00"},
		{"23.5", "R$ 23,50"},
		{"30", "R$ 30,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-12.3", "-R$ 12,30"},
	}

	for _, tc := range tcs {
		d, err := decimal.NewFromString(tc.value)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, Currency(d), "value %s", tc.value)
	}
}

func TestCurrencyFromFloat(t *testing.T) {
	assert.Equal(t, "R$ 23,50", CurrencyFromFloat(23.50))
	assert.Equal(t, "R$ 0,10", CurrencyFromFloat(0.1))
}

func TestDate(t *testing.T) {
	d := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "30/08/2026", Date(d))
	assert.Equal(t, "30/08/2026 14:05", DateTime(d))
}
