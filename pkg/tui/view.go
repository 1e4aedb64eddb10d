package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindmate/pkg/conversation"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("30")).
			Padding(0, 1)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("253")).
			Padding(0, 1)

	crisisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	quickReplyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("172"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	if m.quitting {
		return "Take care of yourself. Goodbye!\n"
	}

	var b strings.Builder

	wrap := m.width - 4
	if wrap < 20 {
		wrap = 20
	}

	for _, entry := range m.transcript.Entries {
		b.WriteString(m.renderEntry(entry, wrap))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.transcript.AwaitingReply() {
		b.WriteString(helpStyle.Render("Waiting for MindMate..."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: send • 1-8: quick reply • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderEntry(entry conversation.Entry, wrap int) string {
	if entry.IsTyping {
		return typingStyle.Render(m.spin.View() + "MindMate is typing...")
	}

	var rendered string
	switch {
	case entry.Sender == conversation.SenderUser:
		rendered = userStyle.MaxWidth(wrap).Render(entry.Text)
	case strings.Contains(entry.Text, "Hotline:"):
		rendered = crisisStyle.MaxWidth(wrap).Render(entry.Text)
	default:
		rendered = botStyle.MaxWidth(wrap).Render(entry.Text)
	}

	if len(entry.QuickReplies) > 0 {
		var hints []string
		for i, label := range entry.QuickReplies {
			hints = append(hints, fmt.Sprintf("[%d] %s", i+1, label))
		}
		rendered += "\n" + quickReplyStyle.MaxWidth(wrap).Render(strings.Join(hints, "  "))
	}

	return rendered
}
