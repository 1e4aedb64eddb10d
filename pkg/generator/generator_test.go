package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmate/pkg/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		AIAPIKey:    "test-key",
		AIModel:     "gpt-4",
		AIBaseURL:   srv.URL,
		AITimeoutMS: 5000,
	}
	return NewClient(cfg, testLogger()), srv
}

func completionBody(content string) string {
	body := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	encoded, _ := json.Marshal(body)
	return string(encoded)
}

func TestGenerate_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4", req.Model)
		assert.Equal(t, 500, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 0.0001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "I'm stressed", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody("  Hello  ")))
	})

	reply, err := client.Generate(context.Background(), "I'm stressed")
	require.NoError(t, err)
	assert.Equal(t, "Hello", reply)
}

func TestGenerate_EmptyCompletionFallsBack(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("   ")))
	})

	reply, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestGenerate_NoChoicesFallsBack(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	reply, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestGenerate_UnparseableBodyFallsBack(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	reply, err := client.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestGenerate_MissingKeyIsUnconfigured(t *testing.T) {
	cfg := &config.Config{AIModel: "gpt-4", AIBaseURL: "http://localhost:0", AITimeoutMS: 1000}
	client := NewClient(cfg, testLogger())

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnconfigured)
}

func TestGenerate_RejectedCredentialIsUnconfigured(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUnconfigured)
}

func TestGenerate_ServerErrorIsProviderUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGenerate_BadRequestIsInvalidRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerate_NetworkErrorIsProviderUnavailable(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Generate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
