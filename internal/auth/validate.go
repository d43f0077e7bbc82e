package auth

import (
	"html"
	"net/mail"
	"strings"
)

const (
	usernameMinLen = 5
	usernameMaxLen = 20
	passwordMinLen = 6
)

// Sanitize trims a free-text field and neutralizes markup so a stored value
// can never smuggle tags into a rendered view.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// ValidateRegistration checks every field and returns the full list of
// problems, not just the first one.
func ValidateRegistration(username, first, last, email, password string) ValidationErrors {
	var errs ValidationErrors

	if l := len(strings.TrimSpace(username)); l < usernameMinLen || l > usernameMaxLen {
		errs = append(errs, FieldError{"username", "username must be 5-20 characters"})
	}
	if strings.TrimSpace(first) == "" {
		errs = append(errs, FieldError{"first", "first name is required"})
	}
	if strings.TrimSpace(last) == "" {
		errs = append(errs, FieldError{"last", "last name is required"})
	}
	if addr, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil || addr.Name != "" {
		errs = append(errs, FieldError{"email", "email must be a valid address"})
	}
	if len(password) < passwordMinLen {
		errs = append(errs, FieldError{"password", "password must be at least 6 characters"})
	}

	return errs
}
