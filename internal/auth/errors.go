package auth

import (
	"errors"
	"strings"
)

var (
	// ErrConflict covers duplicate username and duplicate email alike; callers
	// must not learn which field collided.
	ErrConflict = errors.New("username or email already in use")

	// ErrInvalidCredentials is the single failure returned for every bad login,
	// whatever the underlying reason. The reason goes to the audit log only.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failing field so the caller sees them all
// at once instead of one per round trip.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}
