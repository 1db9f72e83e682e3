package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
		message  string
	}{
		{"too short", "abc", false, "password must be at least 8 characters long"},
		{"exactly seven", "Abcde1!", false, "password must be at least 8 characters long"},
		{"missing uppercase", "abcdefg1!", false, "password must contain an uppercase letter"},
		{"missing lowercase", "ABCDEFG1!", false, "password must contain a lowercase letter"},
		{"missing digit", "Abcdefgh!", false, "password must contain a digit"},
		{"missing symbol", "Abcdefg1", false, "password must contain a special character"},
		{"all rules pass", "Abcdef1!", true, ""},
		{"longer valid password", "Str0ng&Secure-Pass", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePasswordStrength(tt.password)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestValidatePasswordStrength_FirstFailureWins(t *testing.T) {
	// Short and missing everything: length rule reports first
	got := ValidatePasswordStrength("a")
	assert.False(t, got.Valid)
	assert.Equal(t, "password must be at least 8 characters long", got.Message)
}
