package domain

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxPrefixLength is the longest prefix a guild may set, in runes.
const MaxPrefixLength = 10

// ErrInvalidPrefix is returned for empty, overlong or whitespace-containing prefixes.
var ErrInvalidPrefix = errors.New("prefix must be 1 to 10 characters without spaces")

// ValidatePrefix trims and checks a prefix candidate.
func ValidatePrefix(raw string) (string, error) {
	prefix := strings.TrimSpace(raw)
	if prefix == "" || utf8.RuneCountInString(prefix) > MaxPrefixLength {
		return "", ErrInvalidPrefix
	}
	if strings.ContainsFunc(prefix, unicode.IsSpace) {
		return "", ErrInvalidPrefix
	}
	return prefix, nil
}
