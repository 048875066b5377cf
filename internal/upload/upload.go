// Package upload validates and loads the user's portrait photo.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the largest photo accepted when no limit is configured.
const DefaultMaxBytes = 5 * 1024 * 1024

var (
	// ErrNotImage is returned when the content is not an image.
	ErrNotImage = errors.New("not an image")
	// ErrTooLarge is returned when the photo exceeds the size limit.
	ErrTooLarge = errors.New("image too large")
	// ErrUnreadable is returned when the file can not be read.
	ErrUnreadable = errors.New("unreadable image")
)

// Photo is a validated portrait ready to become the user's avatar.
type Photo struct {
	Name string
	MIME string
	Size int64
	Data []byte
}

// DataURL returns the photo encoded as a data URL.
func (p Photo) DataURL() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// Message maps a validation error to the text shown to the user. The size
// message names the loader's own limit.
func (l *Loader) Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotImage):
		return "Please upload an image file"
	case errors.Is(err, ErrTooLarge):
		return "Image must be " + FormatSize(l.MaxBytes) + " or smaller"
	default:
		return "Failed to read the image file"
	}
}

// FormatSize renders a byte count the way limits are shown to users:
// whole megabytes as "5MB", anything else to one decimal or in KB.
func FormatSize(n int64) string {
	const kb, mb = 1024, 1024 * 1024
	switch {
	case n >= mb && n%mb == 0:
		return fmt.Sprintf("%dMB", n/mb)
	case n >= mb:
		return fmt.Sprintf("%.1fMB", float64(n)/mb)
	case n >= kb && n%kb == 0:
		return fmt.Sprintf("%dKB", n/kb)
	case n >= kb:
		return fmt.Sprintf("%.1fKB", float64(n)/kb)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// Loader reads photos from disk under a size limit.
type Loader struct {
	MaxBytes int64
}

// NewLoader creates a loader. A non-positive limit uses DefaultMaxBytes.
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{MaxBytes: maxBytes}
}

// Load reads and validates the file at path. The type check runs on the
// sniffed content before the size check, matching the order the errors
// are reported in the form.
func (l *Loader) Load(path string) (Photo, error) {
	path = expandHome(strings.TrimSpace(path))

	f, err := os.Open(path)
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if info.IsDir() {
		return Photo{}, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	// Read one byte past the limit so oversize files are detected without
	// loading them whole.
	data, err := io.ReadAll(io.LimitReader(f, l.MaxBytes+1))
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	return l.Validate(filepath.Base(path), data, info.Size())
}

// Validate checks already-read content. size is the full size of the
// source, which may exceed len(data) when the read was truncated.
func (l *Loader) Validate(name string, data []byte, size int64) (Photo, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return Photo{}, fmt.Errorf("%s is %s: %w", name, mime.String(), ErrNotImage)
	}
	if size > l.MaxBytes || int64(len(data)) > l.MaxBytes {
		return Photo{}, fmt.Errorf("%s is %d bytes: %w", name, size, ErrTooLarge)
	}
	return Photo{
		Name: name,
		MIME: mime.String(),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

// IsImageName reports whether a file name has a common image extension.
// The file picker uses it to filter listings before any content is read.
func IsImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".heic", ".tif", ".tiff":
		return true
	}
	return false
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
