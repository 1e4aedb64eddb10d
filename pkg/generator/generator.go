// Package generator adapts an OpenAI-compatible chat completions endpoint
// into the single "supportive reply for one message" capability the intake
// pipeline needs.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mindmate/pkg/config"
)

// Error kinds callers must distinguish. Unconfigured is a deployment problem
// and is never retried; the other two surface as a generic processing failure.
var (
	ErrUnconfigured        = errors.New("generator: AI_API_KEY is not set")
	ErrProviderUnavailable = errors.New("generator: completion provider unavailable")
	ErrInvalidRequest      = errors.New("generator: completion provider rejected the request")
)

// FallbackReply substitutes for an empty or unparseable completion.
const FallbackReply = "Sorry, I couldn't generate a response at this time."

const systemPrompt = "You are MindMate, a compassionate and empathetic mental health support chatbot. " +
	"Respond gently and supportively, providing emotional support but do not give medical advice. " +
	"If a crisis is detected, always refer to emergency contacts (handled separately)."

const (
	maxTokens   = 500
	temperature = 0.7
)

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client calls the completion provider. It applies no retry policy; retries,
// if desired, belong to the caller.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:  cfg.AIAPIKey,
		model:   cfg.AIModel,
		baseURL: strings.TrimRight(cfg.AIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.AITimeout(),
		},
		logger: logger,
	}
}

// Generate produces a supportive reply for a single user message. The
// returned error, if any, wraps exactly one of ErrUnconfigured,
// ErrProviderUnavailable or ErrInvalidRequest.
func (c *Client) Generate(ctx context.Context, text string) (string, error) {
	if c.apiKey == "" {
		return "", ErrUnconfigured
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrInvalidRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Completion provider request failed")
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("Completion provider responded")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: provider rejected credential (status %d)", ErrUnconfigured, resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrInvalidRequest, resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		// Unparseable success body degrades to the fallback reply rather
		// than failing the request.
		c.logger.WithError(err).Warn("Could not decode completion response")
		return FallbackReply, nil
	}

	if len(completion.Choices) == 0 {
		return FallbackReply, nil
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return FallbackReply, nil
	}

	return reply, nil
}
