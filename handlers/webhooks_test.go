package handlers

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aurabot/metrics"
	"aurabot/models"
)

type handlerFixture struct {
	gateway *MockGatewayProcessor
	server  *httptest.Server
	pubKey  ed25519.PublicKey
	privKey ed25519.PrivateKey
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	gateway := new(MockGatewayProcessor)
	h := NewWebhooksHandler(gateway, metrics.NewWithRegistry(prometheus.NewRegistry()), hex.EncodeToString(pubKey))

	router := mux.NewRouter()
	h.RegisterRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &handlerFixture{gateway: gateway, server: server, pubKey: pubKey, privKey: privKey}
}

func (f *handlerFixture) post(t *testing.T, path string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(f.server.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func (f *handlerFixture) postSigned(t *testing.T, body []byte, tamper bool) *http.Response {
	t.Helper()
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := ed25519.Sign(f.privKey, append([]byte(timestamp), body...))
	if tamper {
		signature[0] ^= 0xff
	}

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/api/interaction", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func envelope(t *testing.T, eventType string, data any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{"op": 0, "t": eventType, "d": data})
	require.NoError(t, err)
	return body
}

func TestRelayedEventEndpoints(t *testing.T) {
	t.Run("successful processing answers 200", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.gateway.On("ProcessMessageCreate", mock.Anything, mock.MatchedBy(func(event *models.InboundEvent) bool {
			return event.Attempt == 1
		})).Return(nil)

		resp := f.post(t, "/api/message/create", envelope(t, "MESSAGE_CREATE", map[string]string{"id": "1"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decodeResponse(t, resp)["success"])
		f.gateway.AssertExpectations(t)
	})

	t.Run("wrapped redelivery carries the attempt counter", func(t *testing.T) {
		f := newHandlerFixture(t)
		inner := envelope(t, "GUILD_CREATE", map[string]string{"id": "700000000000000001"})
		body, err := json.Marshal(map[string]any{"attempts": 4, "data": json.RawMessage(inner)})
		require.NoError(t, err)

		f.gateway.On("ProcessGuildCreate", mock.Anything, mock.MatchedBy(func(event *models.InboundEvent) bool {
			return event.Attempt == 4
		})).Return(nil)

		resp := f.post(t, "/api/guild/create", body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		f.gateway.AssertExpectations(t)
	})

	t.Run("processing failure answers 500 for redelivery", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.gateway.On("ProcessGuildDelete", mock.Anything, mock.Anything).Return(fmt.Errorf("db down"))

		resp := f.post(t, "/api/guild/delete", envelope(t, "GUILD_DELETE", map[string]string{"id": "1"}))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, false, decodeResponse(t, resp)["success"])
	})

	t.Run("malformed body answers 500 without dispatch", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp := f.post(t, "/api/message/create", []byte("not json at all"))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		f.gateway.AssertNotCalled(t, "ProcessMessageCreate", mock.Anything, mock.Anything)
	})
}

func TestSignedInteractionEndpoint(t *testing.T) {
	pingBody := []byte(`{"id":"500000000000000001","type":1,"token":"tok"}`)
	commandBody := []byte(`{"id":"500000000000000002","type":2,"token":"tok","data":{"name":"help"}}`)

	t.Run("invalid signature answers 401 with no side effects", func(t *testing.T) {
		f := newHandlerFixture(t)

		resp := f.postSigned(t, commandBody, true)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		decoded := decodeResponse(t, resp)
		assert.Equal(t, false, decoded["success"])
		assert.Equal(t, "Invalid request signature", decoded["error"])
		f.gateway.AssertNotCalled(t, "ProcessInteraction", mock.Anything, mock.Anything)
		f.gateway.AssertNotCalled(t, "CallbackType", mock.Anything)
	})

	t.Run("ping is answered with pong and not dispatched", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.gateway.On("CallbackType", 1).Return(1)

		resp := f.postSigned(t, pingBody, false)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), decodeResponse(t, resp)["type"])
		f.gateway.AssertNotCalled(t, "ProcessInteraction", mock.Anything, mock.Anything)
	})

	t.Run("command is acknowledged deferred and then dispatched", func(t *testing.T) {
		f := newHandlerFixture(t)
		dispatched := make(chan struct{})
		f.gateway.On("CallbackType", 2).Return(5)
		f.gateway.On("ProcessInteraction", mock.Anything, mock.MatchedBy(func(event *models.InboundEvent) bool {
			return event.Attempt == 1
		})).Run(func(args mock.Arguments) { close(dispatched) }).Return(nil)

		resp := f.postSigned(t, commandBody, false)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(5), decodeResponse(t, resp)["type"])
		select {
		case <-dispatched:
		case <-time.After(2 * time.Second):
			t.Fatal("interaction was never dispatched")
		}
	})
}

func TestHeartbeatEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.gateway.On("Heartbeat", mock.Anything).Return(nil)

	resp := f.post(t, "/api/heartbeat", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.gateway.AssertExpectations(t)
}

func TestHealthEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	resp, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decodeResponse(t, resp)["status"])
}
