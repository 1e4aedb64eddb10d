package models

import "time"

// IncomingMessage is a single user-submitted chat message. It lives for the
// duration of one request and is never persisted.
type IncomingMessage struct {
	Text   string `json:"message"`
	UserID string `json:"userId"`
}

// HotlineInfo is the static crisis hotline configuration shown to users when
// a crisis is detected.
type HotlineInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

// CrisisVerdict is the classifier's decision for a single message. Immutable
// once computed.
type CrisisVerdict struct {
	IsCrisis bool
	Hotline  *HotlineInfo
}

// PipelineResponse is the sole output contract of the message intake pipeline.
// Crisis and Hotline are mutually consistent: Crisis == false implies
// Hotline == nil.
type PipelineResponse struct {
	Reply   string       `json:"reply"`
	Crisis  bool         `json:"crisis"`
	Hotline *HotlineInfo `json:"hotline"`
}

// JournalEntry is a single mood journal record.
type JournalEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	MoodRating  int       `json:"moodRating"`
	JournalText string    `json:"journalText"`
	CreatedAt   time.Time `json:"createdAt"`
}
