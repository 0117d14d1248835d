package testutil

import (
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ansi codes", "hello world", "hello world"},
		{"with color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"with multiple codes", "\x1b[1;32mbold green\x1b[0m", "bold green"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindLine(t *testing.T) {
	out := "title\n\x1b[1mPlaying\x1b[0m 0:10\n\n"
	i, line := FindLine(out, "Playing")
	if i != 1 || line != "Playing 0:10" {
		t.Errorf("FindLine = %d, %q", i, line)
	}
	if i, _ := FindLine(out, "missing"); i != -1 {
		t.Errorf("FindLine(missing) = %d, want -1", i)
	}
	if n := len(SplitLines(out)); n != 2 {
		t.Errorf("SplitLines kept %d lines, want 2", n)
	}
}

func TestColumn(t *testing.T) {
	if got := Column("│ ▶ Play │", "Play"); got != 4 {
		t.Errorf("Column = %d, want 4", got)
	}
	if got := Column("abc", "x"); got != -1 {
		t.Errorf("Column(missing) = %d, want -1", got)
	}
}
