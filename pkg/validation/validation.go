package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)
	alnumRegex    = regexp.MustCompile(`[^a-z0-9]`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRegex.MatchString(email)
}

// ValidatePassword validates minimum password length
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// ValidateUsername validates username format (lowercase alphanumeric, underscore, hyphen)
func ValidateUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return false
	}
	return usernameRegex.MatchString(username)
}

// NormalizeUsername lowercases and trims a username
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// UsernameBaseFromEmail derives a username candidate from the local part of an email,
// stripped to lowercase alphanumerics. Falls back to "user" when nothing survives.
func UsernameBaseFromEmail(email string) string {
	local := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	base := alnumRegex.ReplaceAllString(local, "")
	if base == "" {
		return "user"
	}
	return base
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
