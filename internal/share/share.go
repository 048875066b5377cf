// Package share builds share links, copies them to the clipboard and
// writes the downloadable poster for a finished tour.
package share

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gosimple/slug"
	"github.com/rs/xid"
)

// IDLength is the number of characters in a share id.
const IDLength = 10

// Platforms are the social networks offered on the share page.
var Platforms = []string{"Facebook", "Twitter", "Instagram", "LinkedIn"}

// ErrInvalidEmail is returned for recipients that are not a single address.
var ErrInvalidEmail = errors.New("invalid email address")

// NewID returns a short unique id for a share link.
func NewID() string {
	id := xid.New().String()
	// The leading characters of an xid encode the timestamp and machine,
	// the trailing ones the pid and counter that vary between calls.
	return id[len(id)-IDLength:]
}

// URL joins a base URL and share id into the public tour link.
func URL(base, id string) string {
	return strings.TrimRight(base, "/") + "/shared-tour/" + id
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the Clipboard backed by the OS.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

// Copy writes url to cb. Failures are returned unchanged; callers report
// them without retrying.
func Copy(cb Clipboard, url string) error {
	if url == "" {
		return errors.New("no share link yet")
	}
	if err := cb.WriteAll(url); err != nil {
		return fmt.Errorf("copying share link: %w", err)
	}
	return nil
}

// ValidateEmail checks that s is a single plain email address.
func ValidateEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidEmail)
	}
	return addr.Address, nil
}

// DownloadName is the file name used when saving a tour poster.
func DownloadName(car, celebrity string) string {
	return slug.Make(car) + "-with-" + slug.Make(celebrity) + ".jpg"
}

// Download writes the poster for a tour into dir and returns its path.
func Download(dir, car, celebrity string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating downloads directory: %w", err)
	}
	data, err := Poster()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, DownloadName(car, celebrity))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Poster renders the placeholder still that stands in for the video.
func Poster() ([]byte, error) {
	const w, h = 640, 360
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{
				R: uint8(30 + 40*x/w),
				G: uint8(30 + 30*y/h),
				B: uint8(46 + 120*x/w),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encoding poster: %w", err)
	}
	return buf.Bytes(), nil
}
