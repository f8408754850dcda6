package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tcs := []struct {
		email string
		want  bool
	}{
		{"maria@example.com", true},
		{"a@b.co", true},
		{"user.name+tag@sub.domain.org", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"spaces in@example.com", false},
		{"@example.com", false},
		{"user@", false},
	}

	for _, tc := range tcs {
		assert.Equal(t, tc.want, IsValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestIsValidPassword(t *testing.T) {
	tcs := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdef1!", true},
		{"valid longer", "Str0ng&Secret", true},
		{"too short", "Ab1!xyz", false},
		{"lowercase only", "abcdefgh", false},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no special", "Abcdefg1", false},
		{"empty", "", false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidPassword(tc.password))
		})
	}
}

func TestGetRandomAlphanumeric(t *testing.T) {
	pin, err := GetRandomAlphanumeric(6)
	assert.NoError(t, err)
	assert.Len(t, pin, 6)

	other, err := GetRandomAlphanumeric(6)
	assert.NoError(t, err)
	assert.NotEqual(t, pin, other)
}
