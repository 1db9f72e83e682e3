package security

import "strings"

// passwordSymbols is the set of punctuation characters accepted as the
// required special character.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// PasswordCheck is the result of a password strength validation.
// Message names the first failing rule; it is empty when Valid is true.
type PasswordCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidatePasswordStrength applies the registration password rules in order
// and reports the first failure: minimum length 8, then at least one
// uppercase letter, lowercase letter, digit, and symbol.
func ValidatePasswordStrength(password string) PasswordCheck {
	if len(password) < 8 {
		return PasswordCheck{Message: "password must be at least 8 characters long"}
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return PasswordCheck{Message: "password must contain an uppercase letter"}
	case !hasLower:
		return PasswordCheck{Message: "password must contain a lowercase letter"}
	case !hasDigit:
		return PasswordCheck{Message: "password must contain a digit"}
	case !hasSymbol:
		return PasswordCheck{Message: "password must contain a special character"}
	}

	return PasswordCheck{Valid: true}
}
