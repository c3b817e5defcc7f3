package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.doe+tag@example.org", "UPPER@EXAMPLE.COM"}
	invalid := []string{"", "plain", "missing@tld", "@example.com", "a b@example.com"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"abc", "john_doe", "j-2", "a123456789012345678901234567890"[:30]}
	invalid := []string{"", "ab", "John", "with space", "dot.ted", "0123456789012345678901234567890"}

	for _, username := range valid {
		if !ValidateUsername(username) {
			t.Errorf("ValidateUsername(%q) = false, want true", username)
		}
	}
	for _, username := range invalid {
		if ValidateUsername(username) {
			t.Errorf("ValidateUsername(%q) = true, want false", username)
		}
	}
}

func TestUsernameBaseFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"john@x.com", "john"},
		{"John.Doe+x@example.com", "johndoex"},
		{"user_42@example.com", "user42"},
		{"__@example.com", "user"},
	}
	for _, tt := range tests {
		if got := UsernameBaseFromEmail(tt.email); got != tt.want {
			t.Errorf("UsernameBaseFromEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
