package wizard

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/mark3labs/celebtour/internal/delay"
	"github.com/mark3labs/celebtour/internal/route"
	"github.com/mark3labs/celebtour/internal/session"
	"github.com/mark3labs/celebtour/internal/share"
	"github.com/mark3labs/celebtour/internal/template"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// ShareTab is a section of the share page.
type ShareTab int

const (
	TabSocial ShareTab = iota
	TabEmail
	TabLink
)

var shareTabLabels = []string{"Social Media", "Email", "Share Link"}

// shareLink resolves the simulated share link generation.
type shareLink struct {
	page int64
	url  string
}

// copiedResetMsg hides the "Copied!" indicator.
type copiedResetMsg struct {
	page int64
	gen  int
}

// editorFailedMsg reports that $EDITOR exited with an error or its file
// could not be read back.
type editorFailedMsg struct {
	err error
}

// EmailEditedMsg carries the body returned from $EDITOR.
type EmailEditedMsg struct {
	Body string
}

// SharePage offers the finished tour to social networks, email, a link
// and a download.
type SharePage struct {
	base

	tab ShareTab

	email    textinput.Model
	subject  string
	body     string
	emailErr string
	tmpFile  string

	copied    bool
	copiedGen int
}

func newSharePage(e *env) *SharePage {
	body, err := template.GetTemplate(e.cfg.EmailTemplate, template.DefaultEmailBody)
	if err != nil {
		log.Warn("Email template unavailable, using default: %v", err)
		body = template.DefaultEmailBody
	}
	return &SharePage{
		base:    newBase(e, route.Share),
		email:   newTextInput("To: ", "friend@example.com"),
		subject: template.DefaultEmailSubject,
		body:    body,
	}
}

// Init starts generating the share link unless the session already has one.
func (p *SharePage) Init() tea.Cmd {
	if p.env.session.ShareURL != "" {
		return nil
	}
	url := share.URL(p.env.cfg.ShareBaseURL, share.NewID())
	return delay.Call(shareLink{page: p.id, url: url}, p.env.timing.ShareURL)
}

// Tab returns the active tab.
func (p *SharePage) Tab() ShareTab {
	return p.tab
}

// Copied reports whether the "Copied!" indicator shows.
func (p *SharePage) Copied() bool {
	return p.copied
}

// EmailError returns the inline email validation message.
func (p *SharePage) EmailError() string {
	return p.emailErr
}

// Capturing reports whether the email field has focus.
func (p *SharePage) Capturing() bool {
	return p.tab == TabEmail && p.email.Focused()
}

// SetSize implements Page.
func (p *SharePage) SetSize(width, height int) {
	p.base.SetSize(width, height)
	p.email.SetWidth(max(min(width-10, 50), 20))
}

// Update implements Page.
func (p *SharePage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case delay.ResultMsg[shareLink]:
		if msg.Data.page != p.id {
			return nil
		}
		p.env.session.ShareURL = msg.Data.url
		log.Info("Share link ready: %s", msg.Data.url)
		return p.env.record(p.env.session.TourEvent(session.ActionShareURL, msg.Data.url, nil))

	case copiedResetMsg:
		if msg.page == p.id && msg.gen == p.copiedGen {
			p.copied = false
		}
		return nil

	case EmailEditedMsg:
		p.body = msg.Body
		p.cleanupTmp()
		return nil

	case editorFailedMsg:
		p.cleanupTmp()
		return p.editorFailed(msg.err)

	case tea.KeyPressMsg:
		return p.handleKey(msg)

	case tea.PasteMsg:
		if p.Capturing() {
			p.email.SetValue(p.email.Value() + tui.SingleLine(msg.Content))
			p.email.CursorEnd()
		}
		return nil
	}

	if p.Capturing() {
		var cmd tea.Cmd
		p.email, cmd = p.email.Update(msg)
		return cmd
	}
	return nil
}

func (p *SharePage) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	k := msg.String()
	switch k {
	case "tab":
		return p.setTab((p.tab + 1) % 3)
	case "shift+tab":
		return p.setTab((p.tab + 2) % 3)
	}

	if p.Capturing() {
		switch k {
		case "esc":
			p.email.Blur()
			return nil
		case "enter":
			return p.sendEmail()
		case "ctrl+e":
			return p.openEditor()
		}
		var cmd tea.Cmd
		p.email, cmd = p.email.Update(msg)
		return cmd
	}

	switch k {
	case "d":
		return p.download()
	case "n":
		return p.startNewTour()
	}

	switch p.tab {
	case TabSocial:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(share.Platforms) {
			return p.shareSocial(share.Platforms[n-1])
		}
	case TabEmail:
		switch k {
		case "e", "enter":
			return p.email.Focus()
		case "ctrl+e":
			return p.openEditor()
		}
	case TabLink:
		if k == "c" {
			return p.copyLink()
		}
	}
	return nil
}

func (p *SharePage) setTab(tab ShareTab) tea.Cmd {
	p.tab = tab
	if tab == TabEmail {
		return p.email.Focus()
	}
	p.email.Blur()
	return nil
}

func (p *SharePage) shareSocial(platform string) tea.Cmd {
	p.env.session.ShareCount++
	log.Info("Shared to %s", platform)
	return tea.Batch(
		tui.ShowToast("Shared to "+platform+"!"),
		p.env.record(p.env.session.ShareEvent(session.ActionSocial, platform)),
	)
}

func (p *SharePage) sendEmail() tea.Cmd {
	to, err := share.ValidateEmail(p.email.Value())
	if err != nil {
		p.emailErr = "Please enter a valid email address"
		return tui.ShowError(p.emailErr)
	}
	p.emailErr = ""

	email := template.BuildEmail(to, p.subject, p.body, p.env.session.Vars(p.env.catalog))
	log.Info("Share email to %s: %q", email.To, email.Subject)

	p.env.session.ShareCount++
	p.email.Reset()
	p.email.Blur()
	return tea.Batch(
		tui.ShowToast("Share email sent!"),
		p.env.record(p.env.session.ShareEvent(session.ActionEmail, to)),
	)
}

func (p *SharePage) copyLink() tea.Cmd {
	if err := share.Copy(p.env.clip, p.env.session.ShareURL); err != nil {
		log.Warn("Copy failed: %v", err)
		return tui.ShowError("Failed to copy link")
	}
	p.copied = true
	p.copiedGen++
	return tea.Batch(
		tui.ShowToast("Link copied to clipboard!"),
		delay.After(p.env.timing.Copied, copiedResetMsg{page: p.id, gen: p.copiedGen}),
		p.env.record(p.env.session.ShareEvent(session.ActionCopy, p.env.session.ShareURL)),
	)
}

func (p *SharePage) download() tea.Cmd {
	cel, car := p.env.session.Pair(p.env.catalog)
	path, err := share.Download(p.env.cfg.DownloadsDir, car.Name, cel.Name)
	if err != nil {
		log.Error("Download failed: %v", err)
		return tui.ShowError("Download failed")
	}
	log.Info("Downloaded poster to %s", path)
	return tea.Batch(
		tui.ShowToast("Saved to "+path),
		p.env.record(p.env.session.ShareEvent(session.ActionDownload, path)),
	)
}

func (p *SharePage) startNewTour() tea.Cmd {
	p.env.session.Restart()
	log.Info("Starting new tour %s", p.env.session.ID)
	return tea.Batch(
		p.env.record(p.env.session.TourEvent(session.ActionStart, "", nil)),
		func() tea.Msg { return NavigateMsg{Path: route.Celebrities, From: p.id} },
	)
}

// openEditor launches $EDITOR on the email body.
func (p *SharePage) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "celebtour_email_*.txt")
	if err != nil {
		return p.editorFailed(fmt.Errorf("creating temp file: %w", err))
	}
	if _, err := tmpfile.WriteString(p.body); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return p.editorFailed(fmt.Errorf("writing temp file: %w", err))
	}
	_ = tmpfile.Close()
	p.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("celebtour", tmpfile.Name())
	if err != nil {
		p.cleanupTmp()
		return p.editorFailed(err)
	}

	name := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return editorFailedMsg{err: err}
		}
		content, err := os.ReadFile(name)
		if err != nil {
			return editorFailedMsg{err: fmt.Errorf("reading edited message: %w", err)}
		}
		return EmailEditedMsg{Body: string(content)}
	})
}

func (p *SharePage) editorFailed(err error) tea.Cmd {
	log.Warn("Email editor failed: %v", err)
	return tui.ShowError("Could not open the editor")
}

func (p *SharePage) cleanupTmp() {
	if p.tmpFile != "" {
		_ = os.Remove(p.tmpFile)
		p.tmpFile = ""
	}
}

// View implements Page.
func (p *SharePage) View() string {
	s := theme.Current().S()
	var b strings.Builder

	vars := p.env.session.Vars(p.env.catalog)
	b.WriteString(renderTitle("Share Your Experience", ""))
	b.WriteString("\n")
	b.WriteString(s.Text.Render(tui.WrapText(template.Summary(vars), max(p.width-4, 20))))
	b.WriteString("\n\n")
	b.WriteString(renderTabs(shareTabLabels, int(p.tab)))
	b.WriteString("\n\n")

	switch p.tab {
	case TabSocial:
		pairs := make([]string, 0, 2*len(share.Platforms))
		for i, platform := range share.Platforms {
			pairs = append(pairs, strconv.Itoa(i+1), platform)
		}
		b.WriteString(renderHintBar(pairs...))
		b.WriteString("\n\n")
		if n := p.env.session.ShareCount; n > 0 {
			times := "times"
			if n == 1 {
				times = "time"
			}
			b.WriteString(s.Success.Render(fmt.Sprintf("Shared %d %s! Thank you for spreading the joy.", n, times)))
		} else {
			b.WriteString(s.Muted.Render("Share your experience with your social network."))
		}

	case TabEmail:
		b.WriteString(p.email.View())
		b.WriteString("\n")
		if p.emailErr != "" {
			b.WriteString(s.Error.Render(p.emailErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Subject: ") + s.Text.Render(template.Render(p.subject, vars)))
		b.WriteString("\n\n")
		b.WriteString(s.Panel.Width(max(min(p.width-4, 80), 30)).Render(
			s.Text.Render(tui.WrapText(template.Render(p.body, vars), max(min(p.width-10, 74), 20))),
		))

	case TabLink:
		url := p.env.session.ShareURL
		if url == "" {
			b.WriteString(s.Dim.Render("Generating your share link..."))
		} else {
			b.WriteString(s.Panel.Render(s.Text.Render(url)))
			if p.copied {
				b.WriteString("  " + s.Success.Render("Copied!"))
			}
			b.WriteString("\n")
			b.WriteString(s.Dim.Render("This link is valid for 30 days."))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(NewButtonBar([]Button{
		{Key: "d", Label: "Download Video", State: ButtonNormal},
		{Key: "n", Label: "Start New Tour", State: ButtonNormal},
	}).Render())

	if p.env.rec != nil {
		b.WriteString("\n\n")
		b.WriteString(s.Dim.Render("Your experience has been saved to your account."))
	}
	return b.String()
}

// Hints implements Page.
func (p *SharePage) Hints() []string {
	switch {
	case p.Capturing():
		return []string{"enter", "send", "ctrl+e", "edit message", "tab", "next tab", "esc", "done"}
	case p.tab == TabSocial:
		return []string{"1-4", "share", "tab", "next tab", "d", "download", "n", "new tour", "esc", "back"}
	case p.tab == TabEmail:
		return []string{"e", "edit recipient", "ctrl+e", "edit message", "tab", "next tab", "esc", "back"}
	default:
		return []string{"c", "copy link", "tab", "next tab", "d", "download", "n", "new tour", "esc", "back"}
	}
}

// Teardown implements Page.
func (p *SharePage) Teardown() {
	p.copied = false
	p.cleanupTmp()
}
