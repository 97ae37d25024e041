package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"aurabot/clients/discord"
	"aurabot/metrics"
	"aurabot/models"
)

// GatewayProcessor is the event-dispatch surface the webhook handlers drive.
type GatewayProcessor interface {
	ProcessGuildCreate(ctx context.Context, event *models.InboundEvent) error
	ProcessGuildDelete(ctx context.Context, event *models.InboundEvent) error
	ProcessMessageCreate(ctx context.Context, event *models.InboundEvent) error
	ProcessInteraction(ctx context.Context, event *models.InboundEvent) error
	CallbackType(interactionType int) int
	Heartbeat(ctx context.Context) error
}

type apiResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type WebhooksHandler struct {
	gateway   GatewayProcessor
	metrics   *metrics.Metrics
	publicKey string
}

func NewWebhooksHandler(gateway GatewayProcessor, m *metrics.Metrics, publicKey string) *WebhooksHandler {
	return &WebhooksHandler{
		gateway:   gateway,
		metrics:   m,
		publicKey: publicKey,
	}
}

// RegisterRoutes mounts every inbound endpoint on the router
func (h *WebhooksHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/guild/create", h.eventEndpoint(models.EventKindGuildCreate, h.gateway.ProcessGuildCreate)).
		Methods(http.MethodPost)
	router.HandleFunc("/api/guild/delete", h.eventEndpoint(models.EventKindGuildDelete, h.gateway.ProcessGuildDelete)).
		Methods(http.MethodPost)
	router.HandleFunc("/api/message/create", h.eventEndpoint(models.EventKindMessageCreate, h.gateway.ProcessMessageCreate)).
		Methods(http.MethodPost)
	router.HandleFunc("/api/interaction/create", h.eventEndpoint(models.EventKindApplicationCommand, h.gateway.ProcessInteraction)).
		Methods(http.MethodPost)
	router.HandleFunc("/api/interaction", h.handleSignedInteraction).Methods(http.MethodPost)
	router.HandleFunc("/api/heartbeat", h.handleHeartbeat).Methods(http.MethodPost)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

// eventEndpoint builds the handler for one relayed event route. A processing
// error answers 500 so the relay redelivers with a bumped attempt counter; a
// malformed body also answers 500 but is never worth redelivering, which the
// relay learns from the identical failure on the next attempt.
func (h *WebhooksHandler) eventEndpoint(
	kind models.EventKind,
	process func(ctx context.Context, event *models.InboundEvent) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "failed to read request body"})
			return
		}

		h.metrics.EventsReceived.WithLabelValues(string(kind)).Inc()
		started := time.Now()

		event, err := models.ParseInboundEvent(body)
		if err != nil {
			log.Printf("❌ Malformed %s event: %v", kind, err)
			h.metrics.EventsFailed.WithLabelValues(string(kind)).Inc()
			writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "malformed event"})
			return
		}

		if err := process(r.Context(), event); err != nil {
			h.metrics.EventsFailed.WithLabelValues(string(kind)).Inc()
			h.metrics.EventDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
			log.Printf("❌ Failed to process %s event (attempt %d): %v", kind, event.Attempt, err)
			writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "event processing failed"})
			return
		}

		h.metrics.EventDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
		writeJSON(w, http.StatusOK, apiResponse{Success: true})
	}
}

// handleSignedInteraction is the endpoint Discord calls directly. The
// signature covers the verbatim timestamp and body bytes; a failed check
// answers 401 before anything is stored or dispatched. Valid interactions
// are acknowledged with their deferred callback type and processed after
// the acknowledgement is on the wire.
func (h *WebhooksHandler) handleSignedInteraction(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "failed to read request body"})
		return
	}

	signature := r.Header.Get("X-Signature-Ed25519")
	timestamp := r.Header.Get("X-Signature-Timestamp")
	if !discord.ValidateSignature(h.publicKey, timestamp, body, signature) {
		log.Printf("⚠️ Rejected interaction with invalid signature from %s", r.RemoteAddr)
		h.metrics.SignatureRejected.Inc()
		writeJSON(w, http.StatusUnauthorized, apiResponse{Success: false, Error: "Invalid request signature"})
		return
	}

	h.metrics.EventsReceived.WithLabelValues(string(models.EventKindApplicationCommand)).Inc()

	payload, err := models.DecodeInteractionPayload(body)
	if err != nil {
		log.Printf("❌ Malformed signed interaction: %v", err)
		h.metrics.EventsFailed.WithLabelValues(string(models.EventKindApplicationCommand)).Inc()
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "malformed event"})
		return
	}

	callbackType := h.gateway.CallbackType(payload.Type)
	writeJSON(w, http.StatusOK, map[string]int{"type": callbackType})

	if payload.Type == 1 {
		return
	}

	// The acknowledgement is already written; processing continues against
	// the interaction token, which outlives this request.
	event := &models.InboundEvent{
		Kind:    models.EventKindApplicationCommand,
		RawBody: body,
		Attempt: 1,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := h.gateway.ProcessInteraction(ctx, event); err != nil {
			h.metrics.EventsFailed.WithLabelValues(string(models.EventKindApplicationCommand)).Inc()
			log.Printf("❌ Failed to process signed interaction %s: %v", payload.ID, err)
		}
	}()
}

func (h *WebhooksHandler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Heartbeat trigger received")
	if err := h.gateway.Heartbeat(r.Context()); err != nil {
		log.Printf("❌ Heartbeat broadcast failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Error: "heartbeat failed"})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}

func (h *WebhooksHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}
