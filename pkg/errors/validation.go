package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds work item identifiers. IDs end up in HTML attributes and
// JSON keys, so anything longer is almost certainly a content mistake.
const maxIDLength = 128

// ValidateItemID validates a work item identifier.
//
// The rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No whitespace (IDs are used as DOM keys)
//   - Maximum length of 128 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidContent, "work id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidContent, "work id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidContent, "work id contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidContent, "work id %q contains whitespace", id)
		}
	}

	return nil
}

// ValidateMediaURL rejects media URLs that could never be rendered safely.
// It is deliberately lenient: anything that is not obviously dangerous is left to
// the media classifier, which never fails.
//
// Rejected:
//   - Control characters (including null bytes)
//   - javascript: and data: schemes
func ValidateMediaURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	for _, r := range rawURL {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidContent, "media URL contains invalid characters")
		}
	}

	lower := strings.ToLower(strings.TrimSpace(rawURL))
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.HasPrefix(lower, scheme) {
			return New(ErrCodeInvalidContent, "media URL must not use the %s scheme", strings.TrimSuffix(scheme, ":"))
		}
	}

	return nil
}

// ValidateListenAddr validates a server listen address of the form host:port or :port.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "listen address cannot be empty")
	}

	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return New(ErrCodeInvalidConfig, "listen address %q must contain a port", addr)
	}

	port := addr[i+1:]
	if port == "" {
		return New(ErrCodeInvalidConfig, "listen address %q has an empty port", addr)
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidConfig, "listen address %q has a non-numeric port", addr)
		}
	}

	return nil
}
