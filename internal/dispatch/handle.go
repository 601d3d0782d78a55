package dispatch

import "strings"

// NormalizeHandle strips surrounding whitespace and at most one leading @,
// so "@alice" and "alice" address the same account.
func NormalizeHandle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	return strings.TrimSpace(s)
}
