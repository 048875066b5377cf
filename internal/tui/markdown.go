package tui

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/charmbracelet/x/ansi"
)

// RenderMarkdown renders markdown content using glamour.
// Falls back to plain text wrapping if rendering fails.
func RenderMarkdown(content string, width int) string {
	// Cap width to 100 for readability
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return WrapText(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return WrapText(content, width)
	}

	// Glamour ends the document with margin lines; drop them
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	for len(lines) > 1 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// WrapText wraps text at word boundaries so no line exceeds width runes.
// Words longer than width are split.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}

		col := 0
		for _, word := range strings.Fields(line) {
			w := []rune(word)
			for len(w) > width {
				if col > 0 {
					result.WriteString("\n")
					col = 0
				}
				result.WriteString(string(w[:width]))
				result.WriteString("\n")
				w = w[width:]
			}
			if len(w) == 0 {
				continue
			}
			switch {
			case col == 0:
			case col+1+len(w) > width:
				result.WriteString("\n")
				col = 0
			default:
				result.WriteString(" ")
				col++
			}
			result.WriteString(string(w))
			col += len(w)
		}
	}
	return result.String()
}
