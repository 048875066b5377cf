package wizard

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/celebtour/internal/tui/theme"
	"github.com/mark3labs/celebtour/internal/upload"
)

// FileItem represents a file or directory in the file picker.
type FileItem struct {
	name  string // Name of file/directory
	path  string // Full path
	isDir bool   // True if directory
}

// Render returns the display line for the item, truncated to width.
func (f *FileItem) Render(width int) string {
	icon := "🖼 "
	if f.isDir {
		icon = "📁"
	}

	display := []rune(icon + " " + f.name)
	if width > 5 && len(display) > width-2 {
		display = append(display[:width-5], []rune("...")...)
	}
	return string(display)
}

// FilePicker browses directories and lists image files only.
type FilePicker struct {
	currentPath string      // Current directory path
	items       []*FileItem // All items in current directory
	selectedIdx int         // Index of selected item
	offset      int         // First visible item
	err         error       // Last directory read failure
	width       int         // Available width
	height      int         // Available height
}

// PhotoPickedMsg is sent when an image file is chosen.
type PhotoPickedMsg struct {
	Path string
}

// NewFilePicker creates a picker opened at dir, falling back to the
// working directory when dir can not be read.
func NewFilePicker(dir string) *FilePicker {
	fp := &FilePicker{
		width:  60,
		height: 10,
	}
	if dir == "" || fp.loadDirectory(dir) != nil {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		fp.err = fp.loadDirectory(cwd)
	}
	return fp
}

// loadDirectory loads subdirectories and image files from the given path.
func (f *FilePicker) loadDirectory(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	f.items = make([]*FileItem, 0, len(entries)+1)

	absPath, err := filepath.Abs(path)
	if err == nil && absPath != filepath.Dir(absPath) {
		f.items = append(f.items, &FileItem{
			name:  "..",
			path:  filepath.Dir(absPath),
			isDir: true,
		})
		path = absPath
	}

	var dirs, files []*FileItem
	for _, entry := range entries {
		// Hidden entries clutter home directories
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fullPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			dirs = append(dirs, &FileItem{name: entry.Name(), path: fullPath, isDir: true})
		} else if upload.IsImageName(entry.Name()) {
			files = append(files, &FileItem{name: entry.Name(), path: fullPath})
		}
	}

	sort.Slice(dirs, func(i, j int) bool {
		return strings.ToLower(dirs[i].name) < strings.ToLower(dirs[j].name)
	})
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].name) < strings.ToLower(files[j].name)
	})

	// Directories first, then files
	f.items = append(f.items, dirs...)
	f.items = append(f.items, files...)

	f.currentPath = path
	f.selectedIdx = 0
	f.offset = 0
	f.err = nil
	return nil
}

// SetSize updates the dimensions for the file picker.
func (f *FilePicker) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.clampOffset()
}

// Dir returns the directory being shown.
func (f *FilePicker) Dir() string {
	return f.currentPath
}

// Update handles navigation keys.
func (f *FilePicker) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if f.selectedIdx > 0 {
			f.selectedIdx--
		}
	case "down", "j":
		if f.selectedIdx < len(f.items)-1 {
			f.selectedIdx++
		}
	case "enter":
		if f.selectedIdx < 0 || f.selectedIdx >= len(f.items) {
			return nil
		}
		item := f.items[f.selectedIdx]
		if item.isDir {
			if err := f.loadDirectory(item.path); err != nil {
				f.err = err
			}
			return nil
		}
		path := item.path
		return func() tea.Msg {
			return PhotoPickedMsg{Path: path}
		}
	case "backspace":
		parentPath := filepath.Dir(f.currentPath)
		if parentPath != f.currentPath {
			if err := f.loadDirectory(parentPath); err != nil {
				f.err = err
			}
		}
	}
	f.clampOffset()
	return nil
}

func (f *FilePicker) visibleRows() int {
	return max(f.height-3, 3)
}

func (f *FilePicker) clampOffset() {
	rows := f.visibleRows()
	if f.selectedIdx < f.offset {
		f.offset = f.selectedIdx
	}
	if f.selectedIdx >= f.offset+rows {
		f.offset = f.selectedIdx - rows + 1
	}
}

// View renders the picker.
func (f *FilePicker) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(s.Muted.Render(f.currentPath))
	b.WriteString("\n\n")

	if f.err != nil {
		b.WriteString(s.Error.Render("Cannot open directory: " + f.err.Error()))
		b.WriteString("\n\n")
	}

	hasFiles := false
	for _, item := range f.items {
		if !item.isDir {
			hasFiles = true
			break
		}
	}

	end := min(f.offset+f.visibleRows(), len(f.items))
	for i := f.offset; i < end; i++ {
		line := f.items[i].Render(f.width)
		if i == f.selectedIdx {
			line = s.ListSelected.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if !hasFiles {
		b.WriteString(s.Dim.Render("No images in this directory"))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// SelectedPath returns the currently selected file path (empty if directory selected).
func (f *FilePicker) SelectedPath() string {
	if f.selectedIdx >= 0 && f.selectedIdx < len(f.items) {
		item := f.items[f.selectedIdx]
		if !item.isDir {
			return item.path
		}
	}
	return ""
}
