// Package email derives presentable attendee names from email addresses.
// The ticketing provider occasionally returns tickets whose profile carries
// an email but no name fields; the roster still needs something to display.
package email

import (
	"strings"
	"unicode"
)

// DisplayName joins first and last into a trimmed display name, falling back
// to a name derived from the email's local part when both are empty.
func DisplayName(first, last, email string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name != "" {
		return name
	}
	derivedFirst, derivedLast := DeriveNameFromEmail(email)
	return derivedFirst + " " + derivedLast
}

// DeriveNameFromEmail splits the local part of an email address on common
// separators and capitalizes the outer segments.
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Guest", "Guest"
	}

	first := capitalize(parts[0])
	last := "Guest"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
