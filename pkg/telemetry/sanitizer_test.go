package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, PIILevelNone, ParseLevel("none"))
	assert.Equal(t, PIILevelFull, ParseLevel("full"))
	assert.Equal(t, PIILevelHashed, ParseLevel("hashed"))
	assert.Equal(t, PIILevelHashed, ParseLevel("bogus"))
}

func TestSanitizeContent(t *testing.T) {
	tests := []struct {
		name        string
		level       PIILevel
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "none redacts everything",
			level:    PIILevelNone,
			input:    "meet me at noon",
			contains: []string{"[REDACTED]"},
		},
		{
			name:     "full passes through",
			level:    PIILevelFull,
			input:    "mail john@example.com",
			contains: []string{"john@example.com"},
		},
		{
			name:        "hashed email",
			level:       PIILevelHashed,
			input:       "Contact me at john.doe@example.com for details",
			contains:    []string{"[EMAIL:", "for details"},
			notContains: []string{"john.doe@example.com"},
		},
		{
			name:        "hashed phone",
			level:       PIILevelHashed,
			input:       "call 555-123-4567",
			contains:    []string{"[PHONE:"},
			notContains: []string{"555-123-4567"},
		},
		{
			name:        "credit card",
			level:       PIILevelHashed,
			input:       "card 4111 1111 1111 1111",
			contains:    []string{"[CC:REDACTED]"},
			notContains: []string{"4111"},
		},
		{
			name:        "ssn",
			level:       PIILevelHashed,
			input:       "ssn 123-45-6789",
			contains:    []string{"[SSN:REDACTED]"},
			notContains: []string{"6789"},
		},
		{
			name:        "ip address",
			level:       PIILevelHashed,
			input:       "from 192.168.1.20",
			contains:    []string{"[IP:"},
			notContains: []string{"192.168.1.20"},
		},
		{
			name:     "plain text untouched",
			level:    PIILevelHashed,
			input:    "see you tomorrow",
			contains: []string{"see you tomorrow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewSanitizer(tt.level, "salt").SanitizeContent(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, result, unwanted)
			}
		})
	}
}

func TestHashIsStablePerSalt(t *testing.T) {
	a := NewSanitizer(PIILevelHashed, "one")
	b := NewSanitizer(PIILevelHashed, "two")

	assert.Equal(t, a.SanitizeUsername("alice"), a.SanitizeUsername("alice"))
	assert.NotEqual(t, a.SanitizeUsername("alice"), b.SanitizeUsername("alice"))
	assert.Len(t, a.SanitizeUsername("alice"), 8)
	assert.Empty(t, a.SanitizeUsername(""))
	assert.Equal(t, "[REDACTED]", NewSanitizer(PIILevelNone, "").SanitizeUsername("alice"))
}
