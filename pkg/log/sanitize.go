package log

import (
	"strings"
)

// SanitizeField checks if the key contains sensitive keywords and sanitizes the value.
// Payment card fields are reduced to their last four digits, credentials are
// masked, and email addresses are partially hidden.
func SanitizeField(key, value string) string {
	if value == "" {
		return value
	}

	// Convert key to lowercase for case-insensitive matching
	lowerKey := strings.ToLower(key)

	// Payment card numbers: keep only the last 4 digits
	if strings.Contains(lowerKey, "card") || strings.Contains(lowerKey, "pan") {
		return sanitizeCardNumber(value)
	}

	// Special handling for email
	if strings.Contains(lowerKey, "email") || strings.Contains(lowerKey, "mail") {
		return sanitizeEmail(value)
	}

	// Check if key contains sensitive keywords
	sensitiveKeywords := []string{
		"password", "passwd", "pwd",
		"api_key", "apikey", "api-key",
		"token", "access_token", "refresh_token",
		"secret", "auth", "authorization",
		"credential", "private_key", "privatekey",
		"otp",
	}

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lowerKey, keyword) {
			return sanitizeToken(value)
		}
	}

	return value
}

// sanitizeToken masks credential values showing only first 4 and last 4 characters.
func sanitizeToken(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:4] + "****" + value[len(value)-4:]
}

// sanitizeCardNumber strips non-digits and keeps only the last 4 digits.
func sanitizeCardNumber(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 4 {
		return "****"
	}
	return "****" + d[len(d)-4:]
}

// sanitizeEmail masks the local part of an email address, keeping the first
// character and the full domain.
func sanitizeEmail(value string) string {
	at := strings.IndexByte(value, '@')
	if at <= 0 {
		return sanitizeToken(value)
	}
	return value[:1] + "***" + value[at:]
}
