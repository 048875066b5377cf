package route

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in       string
		wantPath string
		wantPage Page
	}{
		{"/", Home, PageHome},
		{"", Home, PageHome},
		{"/upload", Upload, PageUpload},
		{"upload", Upload, PageUpload},
		{"/Cars/", Cars, PageCars},
		{" /tour ", Tour, PageTour},
		{"/video?id=1", Video, PageVideo},
		{"/share#link", Share, PageShare},
		{"/celebrities", Celebrities, PageCelebrities},
		{"/gallery", Gallery, PageGallery},
		{"/how-it-works", HowItWorks, PageHome},
		{"/about", About, PageHome},
		{"/terms", Terms, PageHome},
		{"/privacy", Privacy, PageHome},
		{"/nowhere", Home, PageHome},
		{"/shared-tour/abc", Home, PageHome},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, page := Resolve(tt.in)
			require.Equal(t, tt.wantPath, path)
			require.Equal(t, tt.wantPage, page)
		})
	}
}

func TestKnown(t *testing.T) {
	require.True(t, Known("/about"))
	require.False(t, Known("/elsewhere"))
}

func TestNext(t *testing.T) {
	require.Equal(t, Upload, Next(Home))
	require.Equal(t, Cars, Next(Celebrities))
	require.Equal(t, Share, Next(Video))
	require.Equal(t, "", Next(Share))
	require.Equal(t, "", Next(Gallery))
}

func TestRouter_PushBack(t *testing.T) {
	r := NewRouter("/bogus")
	require.Equal(t, Home, r.Current())
	require.False(t, r.CanGoBack())

	r.Push(Upload)
	r.Push(Celebrities)
	r.Push(Celebrities)
	require.Equal(t, PageCelebrities, r.Page())
	require.Equal(t, []string{Home, Upload}, r.History())

	path, ok := r.Back()
	require.True(t, ok)
	require.Equal(t, Upload, path)

	path, ok = r.Back()
	require.True(t, ok)
	require.Equal(t, Home, path)

	path, ok = r.Back()
	require.False(t, ok)
	require.Equal(t, Home, path)
}

func TestRouter_Replace(t *testing.T) {
	r := NewRouter(Tour)
	r.Push(Video)
	r.Replace("/nope")
	require.Equal(t, Home, r.Current())
	require.Equal(t, []string{Tour}, r.History())
}

func TestPageString(t *testing.T) {
	require.Equal(t, "tour", PageTour.String())
	require.Equal(t, "unknown", Page(42).String())
}
