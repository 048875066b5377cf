package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/celebtour/internal/conversation"
	"github.com/mark3labs/celebtour/internal/tui"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

// reactionKeys maps keys to conversation.Reactions by position.
var reactionKeys = []string{"a", "b", "c"}

// InteractionPanel shows the scripted conversation with the guide.
type InteractionPanel struct {
	player    *conversation.Player
	typing    tui.TypingIndicator
	celebrity string
	visible   bool
}

// NewInteractionPanel creates a hidden panel for script. onComplete runs
// once, when the conversation ends or is skipped.
func NewInteractionPanel(script []conversation.Turn, celebrity string, onComplete func() tea.Cmd) *InteractionPanel {
	return &InteractionPanel{
		player:    conversation.New(script, onComplete),
		typing:    tui.NewTypingIndicator(),
		celebrity: celebrity,
	}
}

// Show reveals the panel and starts playback.
func (ip *InteractionPanel) Show() tea.Cmd {
	if ip.visible || ip.player.Completed() {
		return nil
	}
	ip.visible = true
	return ip.sync(ip.player.Start())
}

// Hide removes the panel from view. Playback is not affected.
func (ip *InteractionPanel) Hide() {
	ip.visible = false
}

// Visible reports whether the panel is shown.
func (ip *InteractionPanel) Visible() bool {
	return ip.visible
}

// Player exposes the underlying script player.
func (ip *InteractionPanel) Player() *conversation.Player {
	return ip.player
}

// Update routes conversation and typing messages.
func (ip *InteractionPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case conversation.StepMsg:
		return ip.sync(ip.player.Update(msg))
	case tui.TypingMsg:
		return ip.typing.Update(msg)
	case tea.KeyPressMsg:
		if !ip.visible {
			return nil
		}
		k := msg.String()
		if k == "s" {
			return ip.sync(ip.player.Skip())
		}
		if !ip.player.AwaitingReaction() {
			return nil
		}
		for i, rk := range reactionKeys {
			if k == rk && i < len(conversation.Reactions) {
				return ip.sync(ip.player.React(conversation.Reactions[i].ID))
			}
		}
	}
	return nil
}

// HandlesKey reports whether key is one the panel reacts to right now.
func (ip *InteractionPanel) HandlesKey(key string) bool {
	if !ip.visible || ip.player.Completed() {
		return false
	}
	if key == "s" {
		return true
	}
	if ip.player.AwaitingReaction() {
		for _, rk := range reactionKeys {
			if key == rk {
				return true
			}
		}
	}
	return false
}

// sync starts or stops the typing indicator to match the player.
func (ip *InteractionPanel) sync(cmd tea.Cmd) tea.Cmd {
	if ip.player.Typing() {
		return tea.Batch(cmd, ip.typing.Start())
	}
	ip.typing.Stop()
	return cmd
}

// Stop cancels every pending timer.
func (ip *InteractionPanel) Stop() {
	ip.player.Stop()
	ip.typing.Stop()
}

// View renders the visible turns and, at a pause, the reaction choices.
func (ip *InteractionPanel) View(width int) string {
	if !ip.visible {
		return ""
	}
	s := theme.Current().S()
	var b strings.Builder

	b.WriteString(s.Heading.Render("Chat with " + ip.celebrity))
	b.WriteString("\n")

	wrap := max(width-6, 20)
	turns := ip.player.Displayed()
	// Keep the panel short; only the latest turns matter
	if len(turns) > 4 {
		turns = turns[len(turns)-4:]
	}
	for _, turn := range turns {
		b.WriteString("\n")
		if turn.Speaker == conversation.Celebrity {
			b.WriteString(s.SpeakerCelebrity.Render(ip.celebrity + ": "))
		} else {
			b.WriteString(s.SpeakerUser.Render("You: "))
		}
		b.WriteString(s.Text.Render(tui.WrapText(turn.Text, wrap)))
	}

	if ip.typing.IsActive() {
		b.WriteString("\n")
		b.WriteString(ip.typing.View(ip.celebrity + " is typing"))
	}

	if ip.player.AwaitingReaction() {
		b.WriteString("\n\n")
		pairs := make([]string, 0, 2*len(conversation.Reactions))
		for i, r := range conversation.Reactions {
			pairs = append(pairs, reactionKeys[i], r.Label)
		}
		b.WriteString(renderHintBar(pairs...))
	}

	b.WriteString("\n\n")
	b.WriteString(renderHintBar("s", "skip conversation"))
	return s.Panel.Width(max(width, 24)).Render(b.String())
}
