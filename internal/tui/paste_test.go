package tui

import (
	"testing"
)

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"color codes", "\x1b[31m~/Pictures/me.png\x1b[0m", "~/Pictures/me.png"},
		{"cursor control", "\x1b[2K\x1b[1Gclear line", "clear line"},
		{"null bytes", "me\x00.png\x00", "me.png"},
		{"control chars", "a\x01b\x08c\x0bd\x1fe\x7f", "abcde"},
		{"keeps tabs and newlines", "line1\n\tline2", "line1\n\tline2"},
		{"crlf", "one\r\ntwo\r\n", "one\ntwo"},
		{"trailing whitespace", "photo.jpg  \n\n", "photo.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePaste(tt.input); got != tt.expected {
				t.Errorf("SanitizePaste(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSingleLine(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"friend@example.com", "friend@example.com"},
		{"  friend@example.com\n", "friend@example.com"},
		{"first\n\nsecond", "first second"},
		{"\x1b[1mbold@example.com\x1b[0m", "bold@example.com"},
	}
	for _, tt := range tests {
		if got := SingleLine(tt.input); got != tt.expected {
			t.Errorf("SingleLine(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPastedPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "/home/me/me.png", "/home/me/me.png"},
		{"single quoted", "'/home/me/my photo.png'", "/home/me/my photo.png"},
		{"double quoted", `"/home/me/my photo.png"`, "/home/me/my photo.png"},
		{"escaped spaces", `/home/me/my\ photo.png`, "/home/me/my photo.png"},
		{"escaped backslash", `/tmp/a\\b.png`, `/tmp/a\b.png`},
		{"file url", "file:///home/me/my%20photo.png", "/home/me/my photo.png"},
		{"trailing newline", "/home/me/me.png\n", "/home/me/me.png"},
		{"first line only", "/a.png\n/b.png", "/a.png"},
		{"mismatched quotes kept", `'/a.png"`, `'/a.png"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PastedPath(tt.input); got != tt.expected {
				t.Errorf("PastedPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
