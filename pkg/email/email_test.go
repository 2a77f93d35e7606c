package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		email string
		want  string
	}{
		{"both names", "Jane", "Doe", "jane@example.com", "Jane Doe"},
		{"first only", "Jane", "", "jane@example.com", "Jane"},
		{"last only", "", "Doe", "jane@example.com", "Doe"},
		{"whitespace names fall back to email", "  ", "  ", "jane.doe@example.com", "Jane Doe"},
		{"single-segment local part", "", "", "jane@example.com", "Jane Guest"},
		{"empty everything", "", "", "", "Guest Guest"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.first, tt.last, tt.email))
		})
	}
}

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		first string
		last  string
	}{
		{"jane.doe@example.com", "Jane", "Doe"},
		{"jane_van_doe@example.com", "Jane", "Doe"},
		{"jane-doe+tag@example.com", "Jane", "Tag"},
		{"jane@example.com", "Jane", "Guest"},
		{"@example.com", "Guest", "Guest"},
		{"", "Guest", "Guest"},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			first, last := DeriveNameFromEmail(tt.email)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
