// Package testutil provides helpers for testing rendered screens.
package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared
// as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// SplitLines strips styling and splits output into lines, dropping
// trailing blank lines.
func SplitLines(output string) []string {
	lines := strings.Split(StripANSI(output), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FindLine returns the index and plain text of the first line containing
// substr, or -1 and "".
func FindLine(output, substr string) (int, string) {
	for i, line := range SplitLines(output) {
		if strings.Contains(line, substr) {
			return i, line
		}
	}
	return -1, ""
}

// Column returns the display column where substr starts in line, or -1.
func Column(line, substr string) int {
	i := strings.Index(line, substr)
	if i < 0 {
		return -1
	}
	return ansi.StringWidth(line[:i])
}
