// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookups.
// Email uniqueness is enforced on the normalized form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims surrounding whitespace. No structural validation is done;
// numbers are stored as entered.
func Phone(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value before it is matched against the
// known role set.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
