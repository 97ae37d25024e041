package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurabot/core"
	"aurabot/models"
)

func TestPostChannelMessage(t *testing.T) {
	t.Run("sends embeds with bot authorization", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody models.MessagePayloadOut

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"msg-1","channel_id":"chan-1"}`))
		}))
		defer server.Close()

		client := NewDiscordClientWithBase(server.Client(), "test-token", "app-1", server.URL)
		payload := models.MessagePayloadOut{Embeds: []models.Embed{{Description: "hi"}}}
		message, err := client.PostChannelMessage(context.Background(), "chan-1", payload)

		require.NoError(t, err)
		assert.Equal(t, "/channels/chan-1/messages", gotPath)
		assert.Equal(t, "Bot test-token", gotAuth)
		assert.Equal(t, "msg-1", message.ID)
		require.Len(t, gotBody.Embeds, 1)
		assert.Equal(t, "hi", gotBody.Embeds[0].Description)
	})

	t.Run("non-2xx becomes a delivery error with status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"Missing Access"}`))
		}))
		defer server.Close()

		client := NewDiscordClientWithBase(server.Client(), "test-token", "app-1", server.URL)
		_, err := client.PostChannelMessage(context.Background(), "chan-1", models.MessagePayloadOut{})

		require.Error(t, err)
		var deliveryErr *core.DeliveryError
		require.ErrorAs(t, err, &deliveryErr)
		assert.Equal(t, http.StatusForbidden, deliveryErr.StatusCode)
		assert.Contains(t, deliveryErr.Body, "Missing Access")
	})
}

func TestInteractionWebhookTargets(t *testing.T) {
	t.Run("follow-up create hits the webhook URL without bot auth", func(t *testing.T) {
		var gotPath, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"id":"msg-2"}`))
		}))
		defer server.Close()

		client := NewDiscordClientWithBase(server.Client(), "test-token", "app-1", server.URL)
		message, err := client.CreateFollowupMessage(context.Background(), "tok-1", models.MessagePayloadOut{Content: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "/webhooks/app-1/tok-1", gotPath)
		assert.Empty(t, gotAuth)
		assert.Equal(t, "msg-2", message.ID)
	})

	t.Run("edit original uses PATCH on @original", func(t *testing.T) {
		var gotMethod, gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			w.Write([]byte(`{"id":"msg-3"}`))
		}))
		defer server.Close()

		client := NewDiscordClientWithBase(server.Client(), "test-token", "app-1", server.URL)
		_, err := client.EditOriginalResponse(context.Background(), "tok-1", models.MessagePayloadOut{})

		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/webhooks/app-1/tok-1/messages/@original", gotPath)
	})

	t.Run("interaction callback posts the callback type", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewDiscordClientWithBase(server.Client(), "test-token", "app-1", server.URL)
		err := client.CreateInteractionCallback(context.Background(), "int-1", "tok-1", 5, nil)

		require.NoError(t, err)
		assert.Equal(t, float64(5), gotBody["type"])
	})
}
