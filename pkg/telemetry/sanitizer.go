// Package telemetry scrubs user-supplied text before it reaches logs or spans.
package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
)

// PIILevel defines how much of a message may be exported.
type PIILevel string

const (
	// PIILevelNone redacts all user content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

const redacted = "[REDACTED]"

type pattern struct {
	re      *regexp.Regexp
	replace func(s *Sanitizer, match string) string
}

// Sanitizer redacts or hashes message content and identifiers.
type Sanitizer struct {
	level    PIILevel
	salt     string
	patterns []pattern
}

// ParseLevel maps a config value to a PIILevel; unknown values hash.
func ParseLevel(raw string) PIILevel {
	switch PIILevel(raw) {
	case PIILevelNone, PIILevelFull:
		return PIILevel(raw)
	default:
		return PIILevelHashed
	}
}

// NewSanitizer creates a sanitizer; salt keeps hashes stable per deployment.
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	hashed := func(label string) func(*Sanitizer, string) string {
		return func(s *Sanitizer, match string) string {
			return fmt.Sprintf("[%s:%s]", label, s.hash(match))
		}
	}
	fixed := func(text string) func(*Sanitizer, string) string {
		return func(*Sanitizer, string) string { return text }
	}

	// Order matters: card and SSN numbers must be consumed before the phone pattern sees them.
	return &Sanitizer{
		level: level,
		salt:  salt,
		patterns: []pattern{
			{regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), hashed("EMAIL")},
			{regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), fixed("[CC:REDACTED]")},
			{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), fixed("[SSN:REDACTED]")},
			{regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), hashed("PHONE")},
			{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), hashed("IP")},
			{regexp.MustCompile(`\b(?:[A-Fa-f0-9]{1,4}:){7}[A-Fa-f0-9]{1,4}\b`), hashed("IP")},
		},
	}
}

// Level returns the configured level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// SanitizeContent renders message content for export.
func (s *Sanitizer) SanitizeContent(content string) string {
	switch s.level {
	case PIILevelNone:
		return redacted
	case PIILevelFull:
		return content
	default:
		return s.hashPII(content)
	}
}

// SanitizeUsername renders a username for export.
func (s *Sanitizer) SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return redacted
	case PIILevelFull:
		return username
	default:
		return s.hash(username)
	}
}

func (s *Sanitizer) hashPII(input string) string {
	result := input
	for _, p := range s.patterns {
		result = p.re.ReplaceAllStringFunc(result, func(match string) string {
			return p.replace(s, match)
		})
	}
	return result
}

// hash returns the first 8 hex chars of sha256(data + salt).
func (s *Sanitizer) hash(data string) string {
	h := sha256.New()
	h.Write([]byte(data + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:8]
}
