// Package conversation holds the client-side transcript state machine.
//
// The transcript is reduced by three events: Submit, ResponseReceived and
// ResponseFailed. Reductions return new Transcript values; callers own the
// current value and replace it wholesale, so there is no shared mutation to
// guard.
package conversation

import (
	"fmt"
	"strings"

	"mindmate/pkg/models"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Entry is one rendered line of the conversation. A typing placeholder is a
// bot entry with IsTyping set; it is replaced in place when the outstanding
// turn resolves.
type Entry struct {
	Sender       Sender
	Text         string
	IsTyping     bool
	QuickReplies []string
}

// State is the per-turn state machine. While AwaitingResponse, new
// submissions are rejected: conversational turns are single-flight.
type State int

const (
	Idle State = iota
	AwaitingResponse
)

// Greeting is the fixed first bot entry of every conversation.
const Greeting = "Hello! I'm MindMate, your mental health support chatbot. How can I assist you today?"

// FailureReply replaces the typing placeholder when a turn fails.
const FailureReply = "Sorry, I encountered an error processing your message. Please try again later."

// QuickReply maps a button label to the message its activation submits.
type QuickReply struct {
	Label   string
	Message string
}

// QuickReplies is the fixed guided-conversation option set.
var QuickReplies = []QuickReply{
	{Label: "Daily Check-in", Message: "Hi, how am I feeling today?"},
	{Label: "Mood Rating", Message: "I want to rate my mood from 1 to 10."},
	{Label: "Anxiety Relief", Message: "I am feeling anxious, can you help me relax?"},
	{Label: "Sleep Support", Message: "I have trouble sleeping, any tips?"},
	{Label: "Relationship Stress", Message: "I'm stressed about my relationship."},
	{Label: "Deep Breathing", Message: "Guide me through a deep breathing exercise."},
	{Label: "Positive Affirmations", Message: "Give me some positive affirmations."},
	{Label: "Journaling Prompts", Message: "Can you give me some journaling prompts?"},
}

// QuickReplyMessage resolves a label to its pre-mapped message text.
func QuickReplyMessage(label string) (string, bool) {
	for _, qr := range QuickReplies {
		if qr.Label == label {
			return qr.Message, true
		}
	}
	return "", false
}

func quickReplyLabels() []string {
	labels := make([]string, len(QuickReplies))
	for i, qr := range QuickReplies {
		labels[i] = qr.Label
	}
	return labels
}

// Transcript is the ordered conversation state. Version increments on every
// accepted reduction, so views can cheaply detect change.
type Transcript struct {
	Entries []Entry
	State   State
	Version int
}

// New returns the initial transcript: one bot greeting with the full
// quick-reply set attached.
func New() Transcript {
	return Transcript{
		Entries: []Entry{{
			Sender:       SenderBot,
			Text:         Greeting,
			QuickReplies: quickReplyLabels(),
		}},
		State: Idle,
	}
}

// Submit appends the user entry and a typing placeholder, and moves to
// AwaitingResponse. The returned text is what must be sent over the wire.
// ok is false when the submission is rejected (blank text, or a turn already
// outstanding), in which case the transcript is returned unchanged.
func (t Transcript) Submit(text string) (next Transcript, outgoing string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || t.State == AwaitingResponse {
		return t, "", false
	}

	next = t.clone()
	next.Entries = append(next.Entries,
		Entry{Sender: SenderUser, Text: trimmed},
		Entry{Sender: SenderBot, IsTyping: true},
	)
	next.State = AwaitingResponse
	next.Version++
	return next, trimmed, true
}

// ResponseReceived resolves the outstanding turn with a pipeline response.
// Crisis replies get the hotline line appended and no quick replies;
// ordinary replies get the quick-reply set reattached.
func (t Transcript) ResponseReceived(resp models.PipelineResponse) Transcript {
	resolved := Entry{Sender: SenderBot, Text: resp.Reply}

	if resp.Crisis {
		if resp.Hotline != nil {
			resolved.Text = fmt.Sprintf("%s\n\nHotline: %s - %s", resp.Reply, resp.Hotline.Name, resp.Hotline.Phone)
		}
	} else {
		resolved.QuickReplies = quickReplyLabels()
	}

	return t.resolve(resolved)
}

// ResponseFailed resolves the outstanding turn with the fixed apologetic
// error entry.
func (t Transcript) ResponseFailed(err error) Transcript {
	return t.resolve(Entry{Sender: SenderBot, Text: FailureReply})
}

// resolve replaces the most recent unresolved typing placeholder. At most one
// exists under the single-flight invariant; if none does (a stray event), the
// transcript is returned unchanged.
func (t Transcript) resolve(entry Entry) Transcript {
	idx := -1
	for i := len(t.Entries) - 1; i >= 0; i-- {
		if t.Entries[i].Sender == SenderBot && t.Entries[i].IsTyping {
			idx = i
			break
		}
	}
	if idx == -1 {
		return t
	}

	next := t.clone()
	next.Entries[idx] = entry
	next.State = Idle
	next.Version++
	return next
}

// AwaitingReply reports whether a turn is outstanding; views derive
// input-disabled state from this rather than tracking their own flag.
func (t Transcript) AwaitingReply() bool {
	return t.State == AwaitingResponse
}

// LastEntry returns the newest entry, or a zero Entry for an empty transcript.
func (t Transcript) LastEntry() Entry {
	if len(t.Entries) == 0 {
		return Entry{}
	}
	return t.Entries[len(t.Entries)-1]
}

func (t Transcript) clone() Transcript {
	entries := make([]Entry, len(t.Entries))
	copy(entries, t.Entries)
	t.Entries = entries
	return t
}
