package auth

import (
	"strings"
	"testing"
)

func TestValidateRegistration_Valid(t *testing.T) {
	errs := ValidateRegistration("alice123", "Alice", "A", "a@x.com", "secret1")
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got: %v", errs)
	}
}

// All failing fields come back together, not just the first.
func TestValidateRegistration_AllErrorsReported(t *testing.T) {
	errs := ValidateRegistration("ab", "", "", "not-an-email", "123")
	if len(errs) != 5 {
		t.Fatalf("expected 5 field errors, got %d: %v", len(errs), errs)
	}

	seen := map[string]bool{}
	for _, fe := range errs {
		seen[fe.Field] = true
	}
	for _, field := range []string{"username", "first", "last", "email", "password"} {
		if !seen[field] {
			t.Errorf("expected an error for field %q", field)
		}
	}
}

func TestValidateRegistration_UsernameBounds(t *testing.T) {
	cases := []struct {
		username string
		ok       bool
	}{
		{"abcd", false},
		{"abcde", true},
		{strings.Repeat("a", 20), true},
		{strings.Repeat("a", 21), false},
	}

	for _, tc := range cases {
		errs := ValidateRegistration(tc.username, "Alice", "A", "a@x.com", "secret1")
		if tc.ok && len(errs) != 0 {
			t.Errorf("username %q: expected valid, got %v", tc.username, errs)
		}
		if !tc.ok && len(errs) == 0 {
			t.Errorf("username %q: expected a validation error", tc.username)
		}
	}
}

func TestValidateRegistration_Email(t *testing.T) {
	for _, bad := range []string{"", "plain", "a@", "@x.com", "Alice <a@x.com>"} {
		errs := ValidateRegistration("alice123", "Alice", "A", bad, "secret1")
		if len(errs) == 0 {
			t.Errorf("email %q: expected a validation error", bad)
		}
	}
	if errs := ValidateRegistration("alice123", "Alice", "A", "a@x.com", "secret1"); len(errs) != 0 {
		t.Errorf("plain address should validate, got %v", errs)
	}
}

func TestSanitizeNeutralizesMarkup(t *testing.T) {
	got := Sanitize(`  <script>alert(1)</script>  `)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("sanitized value still contains raw markup: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped markup, got %q", got)
	}
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Errorf("expected trimmed value, got %q", got)
	}
}
