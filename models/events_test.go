package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurabot/core"
)

func TestParseInboundEvent(t *testing.T) {
	t.Run("bare envelope defaults to attempt 1", func(t *testing.T) {
		body := []byte(`{"op":0,"t":"MESSAGE_CREATE","s":42,"d":{"id":"1"}}`)

		event, err := ParseInboundEvent(body)

		require.NoError(t, err)
		assert.Equal(t, EventKindMessageCreate, event.Kind)
		assert.Equal(t, 1, event.Attempt)
		assert.JSONEq(t, `{"id":"1"}`, string(event.RawBody))
	})

	t.Run("relay wrapper carries the attempt counter", func(t *testing.T) {
		body := []byte(`{"attempts":7,"data":{"op":0,"t":"GUILD_CREATE","d":{"id":"g"}}}`)

		event, err := ParseInboundEvent(body)

		require.NoError(t, err)
		assert.Equal(t, EventKindGuildCreate, event.Kind)
		assert.Equal(t, 7, event.Attempt)
	})

	t.Run("unknown dispatch type maps to the unknown kind", func(t *testing.T) {
		body := []byte(`{"op":0,"t":"TYPING_START","d":{"id":"1"}}`)

		event, err := ParseInboundEvent(body)

		require.NoError(t, err)
		assert.Equal(t, EventKindUnknown, event.Kind)
	})

	t.Run("malformed input is a typed error", func(t *testing.T) {
		for _, body := range [][]byte{
			nil,
			[]byte(""),
			[]byte("not json"),
			[]byte(`{"op":0,"t":"MESSAGE_CREATE"}`),
		} {
			_, err := ParseInboundEvent(body)
			require.Error(t, err)
			assert.True(t, core.IsMalformedEventError(err), "body %q", body)
		}
	})
}

func TestPermissionSet_UnmarshalJSON(t *testing.T) {
	t.Run("decimal string", func(t *testing.T) {
		var p PermissionSet
		require.NoError(t, json.Unmarshal([]byte(`"2147483648"`), &p))
		assert.Equal(t, PermissionSet(2147483648), p)
	})

	t.Run("bare number", func(t *testing.T) {
		var p PermissionSet
		require.NoError(t, json.Unmarshal([]byte(`8`), &p))
		assert.Equal(t, PermissionSet(8), p)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var p PermissionSet
		require.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &p))
	})
}

func TestDecodePayloads(t *testing.T) {
	t.Run("message payload requires id, channel and author", func(t *testing.T) {
		_, err := DecodeMessagePayload([]byte(`{"id":"1","channel_id":"2"}`))
		require.Error(t, err)

		payload, err := DecodeMessagePayload([]byte(`{"id":"1","channel_id":"2","author":{"id":"3"}}`))
		require.NoError(t, err)
		assert.Equal(t, "3", payload.Author.ID)
	})

	t.Run("guild notification channel resolution order", func(t *testing.T) {
		payload, err := DecodeGuildPayload([]byte(`{
			"id":"g",
			"system_channel_id":"sys",
			"safety_alerts_channel_id":"safety",
			"public_updates_channel_id":"updates"
		}`))
		require.NoError(t, err)
		assert.Equal(t, "updates", payload.NotificationChannelID())

		payload.PublicUpdatesChannelID = ""
		assert.Equal(t, "safety", payload.NotificationChannelID())

		payload.SafetyAlertsChannelID = ""
		assert.Equal(t, "sys", payload.NotificationChannelID())
	})

	t.Run("interaction payload requires id and type", func(t *testing.T) {
		_, err := DecodeInteractionPayload([]byte(`{"id":"1"}`))
		require.Error(t, err)

		payload, err := DecodeInteractionPayload([]byte(`{"id":"1","type":2,"token":"t","member":{"user":{"id":"u"}}}`))
		require.NoError(t, err)
		assert.Equal(t, "u", payload.AuthorID())
	})
}
