package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// FormatQuoteNumber renders a sequential quote number, e.g. DV-000042
func FormatQuoteNumber(prefix string, n int) string {
	if prefix == "" {
		prefix = "DV"
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// NormalizeEmail is the key used to identify a client across quotes
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
