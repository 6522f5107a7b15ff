// Package validate contains the input checks the view layer applies before
// invoking store operations. The stores themselves stay permissive.
package validate

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password reports whether the password length is within the accepted
// 8–16 character range.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 16
}

// PasswordStrength classifies a password as "weak", "medium", or "strong".
func PasswordStrength(s string) string {
	if !Password(s) {
		return "weak"
	}
	if len(s) < 10 {
		return "medium"
	}
	hasUpper := false
	hasDigit := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if hasUpper && hasDigit {
		return "strong"
	}
	return "medium"
}

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date reports whether s is in "YYYY-MM-DD" form. An empty string is
// accepted: due dates are optional.
func Date(s string) bool {
	return s == "" || dateRe.MatchString(s)
}

var timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Time reports whether s is a 24-hour "HH:MM" clock time. An empty string
// is accepted: due times are optional.
func Time(s string) bool {
	return s == "" || timeRe.MatchString(s)
}
