package azureai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurabot/core"
)

func newTestClient(serverURL string) *ChatClient {
	return NewChatClient(serverURL, "test-key", "test-model", "be nice").(*ChatClient)
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 34},
	})
	return string(body)
}

func TestGenerateResponse(t *testing.T) {
	t.Run("parses structured reply with int color", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody(`{"content":"hello there","color":65280}`)))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GenerateResponse(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "hello there", response.Content)
		assert.Equal(t, 0x00ff00, response.Color)
		assert.Equal(t, 12, response.InputTokens)
		assert.Equal(t, 34, response.OutputTokens)
	})

	t.Run("parses structured reply with hex string color", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody(`{"content":"hey","color":"0x3498db"}`)))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GenerateResponse(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, 0x3498db, response.Color)
	})

	t.Run("falls back to raw text when reply is not structured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(completionBody("just plain prose")))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GenerateResponse(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "just plain prose", response.Content)
		assert.Equal(t, 0, response.Color)
	})

	t.Run("rate limit surfaces as distinct error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).GenerateResponse(context.Background(), "hi")
		assert.ErrorIs(t, err, core.ErrRateLimited)
	})

	t.Run("content filter rejection retries once with sanitized prompt", func(t *testing.T) {
		var calls atomic.Int32
		var secondPrompt string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			call := calls.Add(1)
			if call == 1 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":"content_filter"}}`))
				return
			}
			var req chatRequest
			json.NewDecoder(r.Body).Decode(&req)
			secondPrompt = req.Messages[1].Content
			w.Write([]byte(completionBody("ok now")))
		}))
		defer server.Close()

		response, err := newTestClient(server.URL).GenerateResponse(context.Background(), "tell me about <bad@stuff>")
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, "ok now", response.Content)
		assert.NotContains(t, secondPrompt, "<")
	})
}

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected int
	}{
		{"int", `255`, 255},
		{"hex with 0x", `"0xff0000"`, 0xff0000},
		{"hex with hash", `"#00ff00"`, 0x00ff00},
		{"bare hex", `"3498db"`, 0x3498db},
		{"garbage", `"not a color"`, 0},
		{"empty", ``, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeColor(json.RawMessage(tc.raw)))
		})
	}
}
