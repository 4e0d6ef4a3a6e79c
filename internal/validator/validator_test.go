package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectIDRegex(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		// Valid ids
		{"lowercase hex", "507f1f77bcf86cd799439011", true},
		{"uppercase hex", "507F1F77BCF86CD799439011", true},
		{"mixed case", "507f1F77bcF86cd799439011", true},
		{"all zeros", "000000000000000000000000", true},

		// Invalid ids
		{"too short", "507f1f77bcf86cd79943901", false},
		{"too long", "507f1f77bcf86cd7994390111", false},
		{"non-hex character", "507f1f77bcf86cd79943901g", false},
		{"empty string", "", false},
		{"with hyphen", "507f1f77-bcf8-6cd7-9943", false},
		{"whitespace", "507f1f77bcf86cd79943901 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := objectIDRegex.MatchString(tt.id)
			assert.Equal(t, tt.valid, result, "id: %q", tt.id)
		})
	}
}

func TestRegisterCustomValidators(t *testing.T) {
	t.Run("does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			RegisterCustomValidators()
		})
	})
}
