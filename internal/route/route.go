// Package route maps paths to wizard pages and keeps navigation history.
package route

import "strings"

// Paths served by the wizard.
const (
	Home        = "/"
	Upload      = "/upload"
	Celebrities = "/celebrities"
	Cars        = "/cars"
	Tour        = "/tour"
	Video       = "/video"
	Share       = "/share"
	Gallery     = "/gallery"
	HowItWorks  = "/how-it-works"
	About       = "/about"
	Terms       = "/terms"
	Privacy     = "/privacy"
)

// Page identifies which wizard page renders a path.
type Page int

const (
	PageHome Page = iota
	PageUpload
	PageCelebrities
	PageCars
	PageTour
	PageVideo
	PageShare
	PageGallery
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageUpload:
		return "upload"
	case PageCelebrities:
		return "celebrities"
	case PageCars:
		return "cars"
	case PageTour:
		return "tour"
	case PageVideo:
		return "video"
	case PageShare:
		return "share"
	case PageGallery:
		return "gallery"
	default:
		return "unknown"
	}
}

var pages = map[string]Page{
	Home:        PageHome,
	Upload:      PageUpload,
	Celebrities: PageCelebrities,
	Cars:        PageCars,
	Tour:        PageTour,
	Video:       PageVideo,
	Share:       PageShare,
	Gallery:     PageGallery,
	// Informational paths show the home content.
	HowItWorks: PageHome,
	About:      PageHome,
	Terms:      PageHome,
	Privacy:    PageHome,
}

// Resolve normalizes path and returns it with the page that renders it.
// Unknown paths redirect to Home.
func Resolve(path string) (string, Page) {
	path = Normalize(path)
	page, ok := pages[path]
	if !ok {
		return Home, PageHome
	}
	return path, page
}

// Normalize trims whitespace, query strings and trailing slashes and
// ensures a leading slash.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(strings.TrimRight(path, "/"))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Known reports whether path resolves to a page without redirecting.
func Known(path string) bool {
	_, ok := pages[Normalize(path)]
	return ok
}

var flow = []string{Home, Upload, Celebrities, Cars, Tour, Video, Share}

// Next returns the path after path in the tour flow, or "" at the end
// or for paths outside the flow.
func Next(path string) string {
	for i, p := range flow {
		if p == path && i+1 < len(flow) {
			return flow[i+1]
		}
	}
	return ""
}

// Router tracks the current path and the history behind it.
type Router struct {
	current string
	history []string
}

// NewRouter creates a router positioned at start.
func NewRouter(start string) *Router {
	current, _ := Resolve(start)
	return &Router{current: current}
}

// Current returns the current path.
func (r *Router) Current() string { return r.current }

// Page returns the page for the current path.
func (r *Router) Page() Page {
	_, page := Resolve(r.current)
	return page
}

// Push navigates to path, remembering the current one. Navigating to the
// current path does not grow the history.
func (r *Router) Push(path string) string {
	next, _ := Resolve(path)
	if next == r.current {
		return next
	}
	r.history = append(r.history, r.current)
	r.current = next
	return next
}

// Replace navigates to path without recording history.
func (r *Router) Replace(path string) string {
	r.current, _ = Resolve(path)
	return r.current
}

// Back returns to the previous path. It reports false when there is none.
func (r *Router) Back() (string, bool) {
	if len(r.history) == 0 {
		return r.current, false
	}
	r.current = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	return r.current, true
}

// CanGoBack reports whether Back would move.
func (r *Router) CanGoBack() bool { return len(r.history) > 0 }

// History returns the visited paths, oldest first.
func (r *Router) History() []string {
	return append([]string(nil), r.history...)
}
