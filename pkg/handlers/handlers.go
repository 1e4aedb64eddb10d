package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mindmate/pkg/generator"
	"mindmate/pkg/journal"
	"mindmate/pkg/models"
	"mindmate/pkg/pipeline"
)

// MessagePipeline is the intake pipeline as seen from the HTTP layer.
type MessagePipeline interface {
	Handle(ctx context.Context, msg models.IncomingMessage) (models.PipelineResponse, error)
}

// JournalStore is the journal persistence collaborator.
type JournalStore interface {
	Add(ctx context.Context, userID string, moodRating int, journalText string) (models.JournalEntry, error)
	History(ctx context.Context, userID string) ([]models.JournalEntry, error)
}

// Pinger reports storage reachability for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	pipeline MessagePipeline
	store    JournalStore
	pinger   Pinger
	logger   *logrus.Logger
}

func NewHandler(p MessagePipeline, store JournalStore, pinger Pinger, logger *logrus.Logger) *Handler {
	return &Handler{
		pipeline: p,
		store:    store,
		pinger:   pinger,
		logger:   logger,
	}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Message is required and must be a string.")
		return
	}

	msg := models.IncomingMessage{
		Text:   strings.TrimSpace(request.Message),
		UserID: request.UserID,
	}

	response, err := h.pipeline.Handle(r.Context(), msg)
	if err != nil {
		h.writeChatError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response)

	h.logger.WithFields(logrus.Fields{
		"user_id": msg.UserID,
		"crisis":  response.Crisis,
	}).Debug("Processed chat message")
}

func (h *Handler) writeChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Message is required and must be a string.")
	case errors.Is(err, generator.ErrUnconfigured):
		// Deployment problem, not a user problem. Logged loudly, never
		// silently degraded.
		h.logger.WithError(err).Error("Chat request failed: generator unconfigured")
		writeError(w, http.StatusInternalServerError, "AI_API_KEY environment variable is not set.")
	default:
		h.logger.WithError(err).Error("Chat request failed")
		writeError(w, http.StatusInternalServerError, "Failed to process your message. Please try again later.")
	}
}

func (h *Handler) JournalAdd(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		MoodRating  int    `json:"moodRating"`
		JournalText string `json:"journalText"`
	}

	// A fractional moodRating fails integer decoding, which is exactly the
	// strictness the contract asks for.
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJournalValidationError(w)
		return
	}

	userID := strings.TrimSpace(request.UserID)
	journalText := strings.TrimSpace(request.JournalText)

	if userID == "" || journalText == "" ||
		request.MoodRating < journal.MinMoodRating || request.MoodRating > journal.MaxMoodRating {
		writeJournalValidationError(w)
		return
	}

	entry, err := h.store.Add(r.Context(), userID, request.MoodRating, journalText)
	if err != nil {
		h.logger.WithError(err).Error("Failed to save journal entry")
		writeError(w, http.StatusInternalServerError, "Failed to save journal entry.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   entry,
	})
}

func (h *Handler) JournalHistory(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId query parameter is required.")
		return
	}

	entries, err := h.store.History(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to retrieve journal history")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve journal history.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	if err := h.pinger.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now(),
	})
}

func writeJournalValidationError(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest,
		"Invalid input. Required fields: userId (string), moodRating (integer 1-10), journalText (string).")
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
