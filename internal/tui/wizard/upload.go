package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/celebtour/internal/delay"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/state"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
	"github.com/mark3labs/celebtour/internal/upload"
)

const privacyNotice = "Your photo is only used to create your avatar for this tour. " +
	"It never leaves your machine."

// avatarReadyMsg completes the simulated avatar processing.
type avatarReadyMsg struct {
	page int64
}

// UploadPage takes the user's portrait and turns it into their avatar.
type UploadPage struct {
	base

	picker    *FilePicker
	pathInput textinput.Model
	typing    bool

	message    string // inline validation error
	processing bool
	done       bool
	spinner    tui.Spinner
}

func newUploadPage(e *env) *UploadPage {
	p := &UploadPage{
		base:      newBase(e, route.Upload),
		picker:    NewFilePicker(e.ui.Upload.LastDir),
		pathInput: newTextInput("Path: ", "~/Pictures/me.jpg"),
		spinner:   tui.NewDefaultSpinner(),
	}
	p.done = e.session.Avatar != nil
	return p
}

// Init implements Page.
func (p *UploadPage) Init() tea.Cmd {
	return nil
}

// SetSize implements Page.
func (p *UploadPage) SetSize(width, height int) {
	p.base.SetSize(width, height)
	p.picker.SetSize(width, max(height-12, 5))
	p.pathInput.SetWidth(max(width-10, 20))
}

// Capturing reports whether the typed-path input has focus.
func (p *UploadPage) Capturing() bool {
	return p.typing
}

// Preview returns the data URL of the accepted photo, empty if none.
func (p *UploadPage) Preview() string {
	if p.env.session.Photo == nil {
		return ""
	}
	return p.env.session.Photo.DataURL()
}

// Message returns the inline validation error.
func (p *UploadPage) Message() string {
	return p.message
}

// Update implements Page.
func (p *UploadPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PhotoPickedMsg:
		return p.load(msg.Path)

	case tea.PasteMsg:
		// Dropping a file on the terminal pastes its path
		path := tui.PastedPath(msg.Content)
		if p.typing {
			p.pathInput.SetValue(p.pathInput.Value() + path)
			p.pathInput.CursorEnd()
			return nil
		}
		if path == "" || p.env.session.Photo != nil {
			return nil
		}
		return p.load(path)

	case avatarReadyMsg:
		if msg.page != p.id || !p.processing {
			return nil
		}
		p.processing = false
		if !p.env.session.CreateAvatar() {
			return nil
		}
		p.done = true
		photo := p.env.session.Avatar
		return tea.Batch(
			tui.ShowToast("Avatar created successfully!"),
			p.env.record(p.env.session.TourEvent(session.ActionAvatar, photo.Name, map[string]any{
				"mime": photo.MIME,
				"size": photo.Size,
			})),
			p.nextAfter(p.env.timing.AvatarReveal),
		)

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	if p.processing {
		return p.spinner.Update(msg)
	}
	return nil
}

func (p *UploadPage) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if p.typing {
		switch msg.String() {
		case "esc":
			p.typing = false
			p.pathInput.Blur()
			return nil
		case "enter":
			path := strings.TrimSpace(p.pathInput.Value())
			if path == "" {
				return nil
			}
			p.typing = false
			p.pathInput.Blur()
			p.pathInput.Reset()
			return p.load(path)
		}
		var cmd tea.Cmd
		p.pathInput, cmd = p.pathInput.Update(msg)
		return cmd
	}

	if p.processing {
		return nil
	}

	if p.done {
		if msg.String() == "enter" {
			return p.next()
		}
		return nil
	}

	if p.env.session.Photo != nil {
		switch msg.String() {
		case "enter":
			p.processing = true
			return tea.Batch(
				p.spinner.Tick(),
				delay.After(p.env.timing.AvatarProcess, avatarReadyMsg{page: p.id}),
			)
		case "r":
			p.env.session.ClearPhoto()
			p.message = ""
		}
		return nil
	}

	switch msg.String() {
	case "p", "/":
		p.typing = true
		return p.pathInput.Focus()
	}
	return p.picker.Update(msg)
}

// load validates the file at path. A rejected file leaves the session as it was.
func (p *UploadPage) load(path string) tea.Cmd {
	if p.processing || p.done {
		return nil
	}

	photo, err := p.env.loader.Load(path)
	if err != nil {
		log.Warn("Rejected photo %s: %v", path, err)
		p.message = p.env.loader.Message(err)
		return tui.ShowError(p.message)
	}

	p.message = ""
	p.env.session.SetPhoto(photo)
	log.Info("Accepted photo %s (%s, %d bytes)", photo.Name, photo.MIME, photo.Size)

	p.env.ui.Upload.LastDir = filepath.Dir(path)
	return p.saveUIState()
}

func (p *UploadPage) saveUIState() tea.Cmd {
	if !p.env.cfg.Persist {
		return nil
	}
	dir, ui := p.env.cfg.DataDir, *p.env.ui
	return func() tea.Msg {
		if err := state.Save(dir, &ui); err != nil {
			log.Warn("Failed to save UI state: %v", err)
		}
		return nil
	}
}

// View implements Page.
func (p *UploadPage) View() string {
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(renderTitle("Upload Your Photo", "We'll turn it into the avatar that rides along on your tour"))
	b.WriteString("\n\n")

	photo := p.env.session.Photo
	switch {
	case p.done:
		b.WriteString(s.Success.Render("✓ Avatar created successfully!"))
		b.WriteString("\n\n")
		if avatar := p.env.session.Avatar; avatar != nil {
			b.WriteString(photoCard(*avatar))
			b.WriteString("\n\n")
		}
		b.WriteString(NewButtonBar([]Button{
			{Key: "enter", Label: "Continue to Select Celebrity", State: ButtonFocused},
		}).Render())

	case p.processing:
		b.WriteString(p.spinner.View() + " " + s.Text.Render("Creating your avatar..."))

	case photo != nil:
		b.WriteString(photoCard(*photo))
		b.WriteString("\n\n")
		b.WriteString(NewButtonBar([]Button{
			{Key: "r", Label: "Retake", State: ButtonNormal},
			{Key: "enter", Label: "Create Avatar", State: ButtonFocused},
		}).Render())

	case p.typing:
		b.WriteString(p.pathInput.View())

	default:
		b.WriteString(p.picker.View())
	}

	if p.message != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(p.message))
	}

	b.WriteString("\n\n")
	b.WriteString(s.Dim.Render(tui.WrapText(privacyNotice, max(p.width-4, 20))))
	return b.String()
}

// photoCard summarizes an accepted photo and a prefix of its data URL.
func photoCard(photo upload.Photo) string {
	s := theme.Current().S()
	url := photo.DataURL()
	if len(url) > 48 {
		url = url[:48] + "…"
	}
	lines := []string{
		s.Heading.Render(photo.Name),
		s.Muted.Render(fmt.Sprintf("%s · %.1f KB", photo.MIME, float64(photo.Size)/1024)),
		s.Dim.Render(url),
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Hints implements Page.
func (p *UploadPage) Hints() []string {
	switch {
	case p.typing:
		return []string{"enter", "load", "esc", "cancel"}
	case p.processing:
		return nil
	case p.done:
		return []string{"enter", "continue", "esc", "back"}
	case p.env.session.Photo != nil:
		return []string{"enter", "create avatar", "r", "retake", "esc", "back"}
	default:
		return []string{"↑↓/j/k", "navigate", "enter", "select", "backspace", "up", "p", "type path", "esc", "back"}
	}
}

// Teardown implements Page.
func (p *UploadPage) Teardown() {
	// A pending avatarReadyMsg is dropped once processing is off.
	p.processing = false
}
