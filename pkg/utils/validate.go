package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// ValidEmail accepts anything shaped like x@y.z.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// NormalizePhone strips the spaces users type between digit groups.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

// ValidPhone accepts an optional leading + and up to 16 digits, ignoring spaces.
func ValidPhone(phone string) bool {
	return phoneRegex.MatchString(NormalizePhone(phone))
}
