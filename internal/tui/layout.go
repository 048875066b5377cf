package tui

import uv "github.com/charmbracelet/ultraviolet"

// Layout breakpoints and dimensions
const (
	// CompactWidthBreakpoint is the minimum width for side panels
	CompactWidthBreakpoint = 100
	// CompactHeightBreakpoint is the minimum height for desktop mode
	CompactHeightBreakpoint = 25
	// SidebarWidthDesktop is the width of a page sidebar in desktop mode
	SidebarWidthDesktop = 36
	// HeaderHeight is the height of the header including its gap
	HeaderHeight = 2
	// HintsHeight is the height of the hint bar in rows
	HintsHeight = 1
	// ContentPadding is the horizontal padding around page content
	ContentPadding = 2
)

// LayoutMode represents the layout mode based on terminal size
type LayoutMode int

const (
	// LayoutDesktop shows page sidebars
	LayoutDesktop LayoutMode = iota
	// LayoutCompact stacks everything in one column
	LayoutCompact
)

// Layout defines the rectangular regions of the wizard screen.
type Layout struct {
	Mode    LayoutMode
	Area    uv.Rectangle
	Header  uv.Rectangle
	Content uv.Rectangle
	Hints   uv.Rectangle
}

// IsCompact returns true if the layout is in compact mode
func (l Layout) IsCompact() bool {
	return l.Mode == LayoutCompact
}

// PageSize is the width and height left for a page inside Content.
func (l Layout) PageSize() (int, int) {
	return max(l.Content.Dx()-2*ContentPadding, 20), max(l.Content.Dy(), 6)
}

// CalculateLayout computes the layout rectangles based on terminal dimensions
func CalculateLayout(width, height int) Layout {
	mode := LayoutDesktop
	if width < CompactWidthBreakpoint || height < CompactHeightBreakpoint {
		mode = LayoutCompact
	}

	area := uv.Rectangle{
		Max: uv.Position{X: width, Y: height},
	}

	// header | content | hints
	headerRect, rest := uv.SplitVertical(area, uv.Fixed(min(HeaderHeight, area.Dy())))
	contentRect, hintsRect := uv.SplitVertical(rest, uv.Fixed(max(rest.Dy()-HintsHeight, 0)))

	return Layout{
		Mode:    mode,
		Area:    area,
		Header:  headerRect,
		Content: contentRect,
		Hints:   hintsRect,
	}
}

// SplitSidebar divides a page width into a main column and a sidebar.
// Below the compact breakpoint the sidebar is dropped and gets zero width.
func SplitSidebar(width int) (main, sidebar int) {
	if width < CompactWidthBreakpoint-2*ContentPadding {
		return width, 0
	}
	sidebar = min(SidebarWidthDesktop, width/3)
	// 2-char gap between the columns
	return width - sidebar - 2, sidebar
}
