package upload

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_ValidImage(t *testing.T) {
	data := pngBytes(t)
	path := writeFile(t, "me.png", data)

	photo, err := NewLoader(0).Load(path)
	require.NoError(t, err)
	require.Equal(t, "me.png", photo.Name)
	require.Equal(t, "image/png", photo.MIME)
	require.Equal(t, int64(len(data)), photo.Size)

	url := photo.DataURL()
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestLoad_ContentDecidesNotExtension(t *testing.T) {
	path := writeFile(t, "portrait.jpg", []byte("just some notes, not a picture"))

	l := NewLoader(0)
	_, err := l.Load(path)
	require.ErrorIs(t, err, ErrNotImage)
	require.Equal(t, "Please upload an image file", l.Message(err))
}

func TestLoad_TooLarge(t *testing.T) {
	data := append(pngBytes(t), make([]byte, DefaultMaxBytes)...)
	path := writeFile(t, "huge.png", data)

	l := NewLoader(DefaultMaxBytes)
	_, err := l.Load(path)
	require.ErrorIs(t, err, ErrTooLarge)
	require.Equal(t, "Image must be 5MB or smaller", l.Message(err))
}

func TestMessage_NamesConfiguredLimit(t *testing.T) {
	data := append(pngBytes(t), make([]byte, 4096)...)
	path := writeFile(t, "big.png", data)

	l := NewLoader(2 * 1024)
	_, err := l.Load(path)
	require.ErrorIs(t, err, ErrTooLarge)
	require.Equal(t, "Image must be 2KB or smaller", l.Message(err))

	require.Equal(t, "Image must be 10MB or smaller", NewLoader(10*1024*1024).Message(err))
	require.Equal(t, "Image must be 1.5MB or smaller", NewLoader(1536*1024).Message(err))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{DefaultMaxBytes, "5MB"},
		{3 * 1024 * 1024 / 2, "1.5MB"},
		{512 * 1024, "512KB"},
		{1536, "1.5KB"},
		{900, "900B"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatSize(tt.n))
	}
}

func TestLoad_ExactlyAtLimit(t *testing.T) {
	header := pngBytes(t)
	data := append(header, make([]byte, 256-len(header))...)
	path := writeFile(t, "edge.png", data)

	photo, err := NewLoader(256).Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(256), photo.Size)
}

func TestLoad_Unreadable(t *testing.T) {
	_, err := NewLoader(0).Load(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, ErrUnreadable)
	require.Equal(t, "Failed to read the image file", NewLoader(0).Message(err))

	_, err = NewLoader(0).Load(t.TempDir())
	require.ErrorIs(t, err, ErrUnreadable)
}

func TestValidate_TypeCheckedBeforeSize(t *testing.T) {
	_, err := NewLoader(4).Validate("notes.txt", []byte("plain text that is long"), 23)
	require.ErrorIs(t, err, ErrNotImage)
}

func TestMessage_Nil(t *testing.T) {
	require.Equal(t, "", NewLoader(0).Message(nil))
}

func TestIsImageName(t *testing.T) {
	for _, name := range []string{"a.jpg", "B.JPEG", "c.png", "d.webp", "e.gif"} {
		require.True(t, IsImageName(name), name)
	}
	for _, name := range []string{"a.txt", "b", "c.pdf", "png"} {
		require.False(t, IsImageName(name), name)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "pics/me.png"), expandHome("~/pics/me.png"))
	require.Equal(t, "/abs/me.png", expandHome("/abs/me.png"))
}
