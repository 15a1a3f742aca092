// internal/app/system/normalize/normalize.go

// Package normalize centralizes canonical forms for stored identity
// fields so lookups behave the same everywhere.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails act as membership
// keys on projects and organizations, so every store and registry call
// must see the same form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
