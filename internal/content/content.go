// Package content classifies article body lines for rendering clients.
package content

import (
	"math"
	"strings"
)

// LineKind enumerates the render role of a single body line.
type LineKind string

const (
	Heading1  LineKind = "heading1"
	Heading2  LineKind = "heading2"
	Blank     LineKind = "blank"
	Paragraph LineKind = "paragraph"
)

// Line is one classified line of an article body. Text carries the line
// with the heading marker stripped; it is empty for blank lines.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// Classify splits an article body on newlines and assigns each line a
// render role: "# " prefixes are top-level headings, "## " second-level,
// whitespace-only lines are blank, everything else is a paragraph.
func Classify(body string) []Line {
	raw := strings.Split(body, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		switch {
		case strings.HasPrefix(l, "## "):
			lines = append(lines, Line{Kind: Heading2, Text: strings.TrimPrefix(l, "## ")})
		case strings.HasPrefix(l, "# "):
			lines = append(lines, Line{Kind: Heading1, Text: strings.TrimPrefix(l, "# ")})
		case strings.TrimSpace(l) == "":
			lines = append(lines, Line{Kind: Blank})
		default:
			lines = append(lines, Line{Kind: Paragraph, Text: l})
		}
	}
	return lines
}

// ReadingTime estimates reading minutes at 200 words per minute,
// never reporting less than one minute.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := int(math.Round(float64(words) / 200))
	if minutes < 1 {
		return 1
	}
	return minutes
}
