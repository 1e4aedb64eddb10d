// Package apiclient is the Go client for the MindMate HTTP API, used by the
// terminal chat client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mindmate/pkg/models"
)

// DefaultTimeout bounds every API round-trip.
const DefaultTimeout = 15 * time.Second

// APIError is a structured error body returned by the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SendMessage submits one chat message and returns the pipeline response.
func (c *Client) SendMessage(ctx context.Context, message, userID string) (models.PipelineResponse, error) {
	var response models.PipelineResponse
	err := c.post(ctx, "/chat", map[string]string{
		"message": message,
		"userId":  userID,
	}, &response)
	return response, err
}

// AddJournalEntry stores a mood journal entry.
func (c *Client) AddJournalEntry(ctx context.Context, userID string, moodRating int, journalText string) (models.JournalEntry, error) {
	var response struct {
		Success bool                `json:"success"`
		Entry   models.JournalEntry `json:"entry"`
	}
	err := c.post(ctx, "/journal/add", map[string]interface{}{
		"userId":      userID,
		"moodRating":  moodRating,
		"journalText": journalText,
	}, &response)
	return response.Entry, err
}

// JournalHistory fetches a user's entries, newest first.
func (c *Client) JournalHistory(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	var response struct {
		Entries []models.JournalEntry `json:"entries"`
	}

	endpoint := c.baseURL + "/journal/history?userId=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if err := c.do(req, &response); err != nil {
		return nil, err
	}
	return response.Entries, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}
		// Best effort: keep the transport error message when the body is
		// not a structured error.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
