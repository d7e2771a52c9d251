package textwidth

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StringWidth returns the widest line of s in monospace columns. A CJK
// character counts as two columns, measured by its GBK encoding length.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		maxWidth = max(maxWidth, lineWidth(line))
	}
	return maxWidth
}

// PadRight appends ASCII spaces until the rendered width matches target.
func PadRight(s string, width int) string {
	diff := width - StringWidth(s)
	if diff <= 0 {
		return s
	}
	return s + strings.Repeat(" ", diff)
}

// Center surrounds s with spaces so it sits in the middle of width columns.
func Center(s string, width int) string {
	diff := width - StringWidth(s)
	if diff <= 0 {
		return s
	}
	left := diff / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", diff-left)
}

// JoinColumns places multi-line blocks side by side, padding each block to
// its own width and separating them with gap spaces.
func JoinColumns(blocks [][]string, gap int) []string {
	height := 0
	widths := make([]int, len(blocks))
	for i, block := range blocks {
		height = max(height, len(block))
		for _, line := range block {
			widths[i] = max(widths[i], lineWidth(line))
		}
	}
	sep := strings.Repeat(" ", gap)
	lines := make([]string, height)
	for row := 0; row < height; row++ {
		parts := make([]string, len(blocks))
		for i, block := range blocks {
			line := ""
			if row < len(block) {
				line = block[row]
			}
			parts[i] = PadRight(line, widths[i])
		}
		lines[row] = strings.TrimRight(strings.Join(parts, sep), " ")
	}
	return lines
}

func lineWidth(s string) int {
	if s == "" {
		return 0
	}
	clean := stripANSI(s)
	// GBK encodes box drawing glyphs as two bytes while terminals draw them
	// one column wide, so those are counted separately.
	width := 0
	var run strings.Builder
	for _, r := range clean {
		if isNarrowSymbol(r) {
			width += gbkWidth(run.String()) + 1
			run.Reset()
			continue
		}
		run.WriteRune(r)
	}
	return width + gbkWidth(run.String())
}

func gbkWidth(s string) int {
	if s == "" {
		return 0
	}
	encoder := simplifiedchinese.GBK.NewEncoder()
	encoded, _, err := transform.String(encoder, s)
	if err != nil {
		return fallbackWidth(s)
	}
	return len(encoded)
}

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// fallbackWidth covers runes GBK cannot encode, such as emoji, counting
// anything outside ASCII as two columns.
func fallbackWidth(s string) int {
	width := 0
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			continue
		case r <= unicode.MaxASCII, isNarrowSymbol(r):
			width++
		default:
			width += 2
		}
	}
	return width
}

func isNarrowSymbol(r rune) bool {
	return (r >= 0x2500 && r <= 0x259F) || r == '•' || r == '·' || r == '…'
}
