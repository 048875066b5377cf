package tui

import (
	"net/url"
	"regexp"
	"strings"
)

// ansiEscapePattern matches ANSI escape sequences including:
// - Control sequences (ESC [ ...)
// - Private sequences (ESC [ ? ...)
// - Cursor control, color codes, etc.
var ansiEscapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// SanitizePaste cleans up pasted content by:
// - Stripping ANSI escape sequences
// - Removing null bytes and non-printable control chars (except \n, \t, \r)
// - Normalizing CRLF (\r\n) to LF (\n)
// - Trimming trailing whitespace
func SanitizePaste(content string) string {
	content = ansiEscapePattern.ReplaceAllString(content, "")

	var result strings.Builder
	for _, r := range content {
		switch {
		case r == 0:
			continue
		case r >= 1 && r <= 8:
			continue
		case r == 11 || r == 12:
			continue
		case r >= 14 && r <= 31:
			continue
		case r == 127:
			continue
		default:
			result.WriteRune(r)
		}
	}
	content = result.String()

	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.TrimRight(content, " \t\n\r")
}

// newlinePattern matches one or more newline characters
var newlinePattern = regexp.MustCompile(`\n+`)

// SingleLine sanitizes a paste for a one-line input such as an email
// address, collapsing newlines into single spaces.
func SingleLine(content string) string {
	return strings.TrimSpace(newlinePattern.ReplaceAllString(SanitizePaste(content), " "))
}

// PastedPath turns what a terminal pastes when a file is dropped on it
// into a plain path. Terminals quote the path, escape spaces with
// backslashes or send a file:// URL. Only the first line is used.
func PastedPath(content string) string {
	content = SanitizePaste(content)
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = content[:i]
	}
	content = strings.TrimSpace(content)

	if len(content) >= 2 {
		first, last := content[0], content[len(content)-1]
		if (first == '\'' || first == '"') && first == last {
			return content[1 : len(content)-1]
		}
	}

	if strings.HasPrefix(content, "file://") {
		if u, err := url.Parse(content); err == nil {
			return u.Path
		}
	}

	// Shell-style escapes: "\ " is a space, "\\" a backslash
	if strings.Contains(content, `\`) {
		var b strings.Builder
		escaped := false
		for _, r := range content {
			if r == '\\' && !escaped {
				escaped = true
				continue
			}
			escaped = false
			b.WriteRune(r)
		}
		content = b.String()
	}
	return content
}
