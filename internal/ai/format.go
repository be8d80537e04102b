package ai

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	numberedItem = regexp.MustCompile(`\d+\.\s+`)
	pointSplit   = regexp.MustCompile(`[\n•]+`)
	colonSpacing = regexp.MustCompile(`:\s*`)
)

// FormatReply normalizes raw model output into spaced bullet points:
// numbered list markers become bullets, each fragment is trimmed and
// capitalized, and headings get a blank line after the colon.
func FormatReply(text string) string {
	text = numberedItem.ReplaceAllString(text, "• ")

	points := pointSplit.Split(text, -1)

	formatted := make([]string, 0, len(points))
	for _, point := range points {
		point = strings.TrimSpace(point)
		if point == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(point)
		point = string(unicode.ToUpper(r)) + point[size:]
		if !strings.HasPrefix(point, "•") {
			point = "• " + point
		}
		formatted = append(formatted, point)
	}

	text = strings.Join(formatted, "\n\n")
	text = colonSpacing.ReplaceAllString(text, ":\n\n")

	return strings.TrimSpace(text)
}
