// Package strutil provides common string utilities for report display.
package strutil

// TruncateRunes shortens a string to n runes with ellipsis.
// If n < 4, uses n = 4 to ensure room for "...".
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n < 4 {
		n = 4
	}
	return string(runes[:n-3]) + "..."
}
