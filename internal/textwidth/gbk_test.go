package textwidth_test

import (
	"testing"

	"github.com/mybrain/mybrain/internal/textwidth"
)

func TestStringWidthMixedScripts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"ascii", "hello", 5},
		{"chinese", "中文", 4},
		{"mixed", "A中", 3},
		{"multiline", "ab\n中文", 4},
		{"ansi", "\x1b[32m12\x1b[0m", 2},
		{"box drawing", "╭──╮", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textwidth.StringWidth(tt.in); got != tt.want {
				t.Fatalf("StringWidth(%q)=%d want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	got := textwidth.PadRight("中", 4)
	if textwidth.StringWidth(got) != 4 {
		t.Fatalf("PadRight width=%d want 4", textwidth.StringWidth(got))
	}
	if got == "中" {
		t.Fatalf("PadRight should append spaces")
	}
}

func TestCenter(t *testing.T) {
	if got := textwidth.Center("ab", 7); got != "  ab   " {
		t.Fatalf("Center=%q", got)
	}
	if got := textwidth.Center("abcdef", 3); got != "abcdef" {
		t.Fatalf("Center should not truncate, got %q", got)
	}
}

func TestJoinColumns(t *testing.T) {
	lines := textwidth.JoinColumns([][]string{
		{"a", "bbb"},
		{"中文", "x", "y"},
	}, 2)
	want := []string{"a    中文", "bbb  x", "     y"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: %q want %q", i, lines[i], want[i])
		}
	}
}
