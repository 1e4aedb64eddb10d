// Package tui is the terminal chat client. It is a thin Bubble Tea shell
// around the conversation.Transcript reducer: key events feed Submit, network
// results feed ResponseReceived/ResponseFailed, and View renders whatever the
// transcript currently holds.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mindmate/pkg/apiclient"
	"mindmate/pkg/conversation"
	"mindmate/pkg/models"
)

// responseMsg carries a successful pipeline response back into Update.
type responseMsg struct {
	resp models.PipelineResponse
}

// errorMsg carries a failed round-trip back into Update.
type errorMsg struct {
	err error
}

type Model struct {
	transcript conversation.Transcript
	input      textinput.Model
	spin       spinner.Model
	client     *apiclient.Client
	userID     string
	width      int
	quitting   bool
}

func New(client *apiclient.Client, userID string) Model {
	input := textinput.New()
	input.Placeholder = "Type your message here..."
	input.CharLimit = 2000
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		transcript: conversation.New(),
		input:      input,
		spin:       spin,
		client:     client,
		userID:     userID,
		width:      80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case responseMsg:
		m.transcript = m.transcript.ResponseReceived(msg.resp)
		return m, nil

	case errorMsg:
		m.transcript = m.transcript.ResponseFailed(msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit(m.input.Value())

	case tea.KeyRunes:
		// Digits select quick replies when the composer is empty and the
		// newest bot entry offers them.
		if m.input.Value() == "" && !m.transcript.AwaitingReply() {
			if label, ok := m.quickReplyForKey(msg.Runes); ok {
				text, _ := conversation.QuickReplyMessage(label)
				return m.submit(text)
			}
		}
	}

	// Input stays disabled while a turn is outstanding.
	if m.transcript.AwaitingReply() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	next, outgoing, ok := m.transcript.Submit(text)
	if !ok {
		return m, nil
	}

	m.transcript = next
	m.input.Reset()

	return m, tea.Batch(m.sendCmd(outgoing), m.spin.Tick)
}

func (m Model) sendCmd(text string) tea.Cmd {
	client := m.client
	userID := m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiclient.DefaultTimeout)
		defer cancel()

		resp, err := client.SendMessage(ctx, text, userID)
		if err != nil {
			return errorMsg{err: err}
		}
		return responseMsg{resp: resp}
	}
}

func (m Model) quickReplyForKey(runes []rune) (string, bool) {
	if len(runes) != 1 {
		return "", false
	}
	idx := int(runes[0] - '1')
	labels := m.transcript.LastEntry().QuickReplies
	if idx < 0 || idx >= len(labels) {
		return "", false
	}
	return labels[idx], true
}
