// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Truncate returns at most n characters of s, cutting on a rune boundary.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Excerpt collapses whitespace and truncates to n characters with an ellipsis.
func Excerpt(s string, n int) string {
	collapsed := strings.Join(strings.Fields(SanitizeText(s)), " ")
	if len([]rune(collapsed)) <= n {
		return collapsed
	}
	return Truncate(collapsed, n) + "..."
}
