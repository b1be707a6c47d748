package utils

import (
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts exactly 10 digits.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
