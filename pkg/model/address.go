package model

import "strings"

// IsAddress reports whether s is a well-formed identity address:
// "0x" followed by exactly 40 hex digits.
func IsAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// NormalizeAddress lower-cases the hex portion so addresses compare
// byte-for-byte regardless of how the caller checksummed them.
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}
