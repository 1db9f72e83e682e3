package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"script tag", `<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{"ampersand first", "a&b<c", "a&amp;b&lt;c"},
		{"single quote", "O'Brien", "O&#x27;Brien"},
		{"clean input unchanged", "Acme Trading Ltd.", "Acme Trading Ltd."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeInput(tt.in))
		})
	}
}
