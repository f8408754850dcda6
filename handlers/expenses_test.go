package handlers

import (
	"testing"
	"time"

	"gastos/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateExpense(t *testing.T) {
	tcs := []struct {
		name        string
		description string
		value       float64
		date        string
		errType     shared.ApiErrorType
	}{
		{"valid", "Almoço", 23.50, "2024-05-10", ""},
		{"empty description", "", 23.50, "2024-05-10", shared.ApiErrorTypeInvalidInput},
		{"empty date", "Almoço", 23.50, "", shared.ApiErrorTypeInvalidInput},
		{"zero value", "Almoço", 0, "2024-05-10", shared.ApiErrorTypeInvalidInput},
		{"negative value", "Almoço", -5, "2024-05-10", shared.ApiErrorTypeInvalidInput},
		{"bad date format", "Almoço", 23.50, "10/05/2024", shared.ApiErrorTypeInvalidInput},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			date, apiErr := validateExpense(tc.description, tc.value, tc.date)

			if tc.errType == "" {
				require.Nil(t, apiErr)
				assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), date)
			} else {
				require.NotNil(t, apiErr)
				assert.Equal(t, tc.errType, apiErr.Type)
			}
		})
	}
}
