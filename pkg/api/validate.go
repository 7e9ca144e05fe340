package api

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateRecipient checks that addr is a plausible email address. A
// takedown notice must always carry a non-empty primary recipient; the
// server performs the authoritative validation.
func ValidateRecipient(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return fmt.Errorf("recipient must not be empty")
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		return fmt.Errorf("recipient %q is not a valid email address", addr)
	}
	return nil
}

// ValidateSiteURL rejects obviously malformed report URLs before they
// reach the API. Scheme-less URLs are accepted; the server normalizes them.
func ValidateSiteURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("url must not be empty")
	}
	if strings.ContainsAny(raw, " \t\n") {
		return fmt.Errorf("url %q contains whitespace", raw)
	}
	return nil
}
