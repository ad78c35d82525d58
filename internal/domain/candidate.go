package domain

import "strings"

// Alphabet is the candidate character set in enumeration order.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789._"

// Hard platform limits on username length. Config windows must fit inside.
const (
	MinUsernameLen = 1
	MaxUsernameLen = 30
)

// IsValidCandidate reports whether s is a well-formed username within the
// [minLen, maxLen] window: allowed charset only, no leading or trailing '.',
// no "..".
func IsValidCandidate(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
