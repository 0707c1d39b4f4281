package util

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeE164 does a strict-ish normalization to E.164: +<digits>.
// Phones need at least 10 digits here (shorter ones are rejected before any
// network or DB work happens).
func NormalizeE164(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("phone is required")
	}

	var digits []rune
	for _, r := range s {
		if r == '+' {
			continue
		}
		if unicode.IsDigit(r) {
			digits = append(digits, r)
			continue
		}
		// ignore separators commonly typed by users
		switch r {
		case ' ', '-', '(', ')':
			continue
		default:
			return "", fmt.Errorf("phone contains invalid characters")
		}
	}

	if len(digits) < 10 || len(digits) > 15 {
		return "", fmt.Errorf("phone must be 10 to 15 digits")
	}
	return "+" + string(digits), nil
}
