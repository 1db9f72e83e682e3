// Package security contains pure validation and masking helpers used to
// gate-keep sensitive form input before it reaches any downstream handling.
// All functions are total: malformed input yields a definite value, never
// an error or panic.
package security

import "strings"

// ValidateCardLuhn reports whether the card number passes the Luhn checksum.
// Non-digit characters (spaces, dashes) are stripped first. This catches
// transcription errors and obvious forgeries; it is not issuer validation.
func ValidateCardLuhn(cardNumber string) bool {
	digits := stripNonDigits(cardNumber)
	if len(digits) == 0 {
		return false
	}

	sum := 0
	double := false
	// Traverse right to left, doubling every second digit.
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// MaskCardNumber returns a display string exposing only the last 4 digits,
// in the fixed format "•••• •••• •••• 1234".
func MaskCardNumber(cardNumber string) string {
	digits := stripNonDigits(cardNumber)
	last4 := digits
	if len(digits) > 4 {
		last4 = digits[len(digits)-4:]
	}
	return "•••• •••• •••• " + last4
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
