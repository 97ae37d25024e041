package models

import (
	"encoding/json"
	"strconv"

	"aurabot/core"
)

// EventKind identifies the type of an inbound gateway event after
// normalization. Unknown event types map to EventKindUnknown rather than
// failing the request.
type EventKind string

const (
	EventKindPing               EventKind = "PING"
	EventKindApplicationCommand EventKind = "APPLICATION_COMMAND"
	EventKindMessageComponent   EventKind = "MESSAGE_COMPONENT"
	EventKindModalSubmit        EventKind = "MODAL_SUBMIT"
	EventKindMessageCreate      EventKind = "MESSAGE_CREATE"
	EventKindGuildCreate        EventKind = "GUILD_CREATE"
	EventKindGuildDelete        EventKind = "GUILD_DELETE"
	EventKindUnknown            EventKind = "UNKNOWN"
)

// GatewayEnvelope is the bare Discord gateway dispatch shape relayed to the
// webhook endpoints.
type GatewayEnvelope struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
	T  string          `json:"t"`
	S  int             `json:"s"`
}

// deliveryWrapper is the relay's redelivery envelope. Attempts counts how
// many times the relay has delivered this event after handler failures.
type deliveryWrapper struct {
	Attempts int             `json:"attempts"`
	Data     json.RawMessage `json:"data"`
}

// InboundEvent is a normalized inbound gateway event. Immutable once parsed.
type InboundEvent struct {
	Kind    EventKind
	RawBody json.RawMessage
	Attempt int
}

// ParseInboundEvent parses a webhook body into an InboundEvent. Both the
// bare gateway envelope and the relay's {attempts, data} wrapper are
// supported; without the wrapper the attempt defaults to 1.
func ParseInboundEvent(body []byte) (*InboundEvent, error) {
	if len(body) == 0 {
		return nil, core.NewMalformedEventError("empty body", nil)
	}

	attempt := 1
	payload := body

	var wrapper deliveryWrapper
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Data) > 0 {
		if wrapper.Attempts > 0 {
			attempt = wrapper.Attempts
		}
		payload = wrapper.Data
	}

	var envelope GatewayEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, core.NewMalformedEventError("invalid gateway envelope", err)
	}
	if len(envelope.D) == 0 {
		return nil, core.NewMalformedEventError("envelope has no event data", nil)
	}

	return &InboundEvent{
		Kind:    eventKindFromDispatchType(envelope.T),
		RawBody: envelope.D,
		Attempt: attempt,
	}, nil
}

func eventKindFromDispatchType(t string) EventKind {
	switch t {
	case "MESSAGE_CREATE":
		return EventKindMessageCreate
	case "GUILD_CREATE":
		return EventKindGuildCreate
	case "GUILD_DELETE":
		return EventKindGuildDelete
	case "INTERACTION_CREATE":
		return EventKindApplicationCommand
	default:
		return EventKindUnknown
	}
}

// PermissionSet is a Discord permission bitfield. The API serializes it as a
// decimal string, older relay revisions as a number; both are accepted.
type PermissionSet int64

func (p *PermissionSet) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, err := strconv.ParseInt(asString, 10, 64)
		if err != nil {
			return err
		}
		*p = PermissionSet(parsed)
		return nil
	}

	var asNumber int64
	if err := json.Unmarshal(data, &asNumber); err != nil {
		return err
	}
	*p = PermissionSet(asNumber)
	return nil
}

// MessageAuthor is the author of an inbound message.
type MessageAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// MessageMember carries the guild-member fields the router needs.
type MessageMember struct {
	Permissions PermissionSet `json:"permissions"`
}

// MessagePayload is the MESSAGE_CREATE event data.
type MessagePayload struct {
	ID        string          `json:"id"`
	ChannelID string          `json:"channel_id"`
	GuildID   string          `json:"guild_id"`
	Content   string          `json:"content"`
	Author    MessageAuthor   `json:"author"`
	Mentions  []MessageAuthor `json:"mentions"`
	Member    *MessageMember  `json:"member,omitempty"`
}

// DecodeMessagePayload parses MESSAGE_CREATE event data, failing fast on
// missing required fields.
func DecodeMessagePayload(raw json.RawMessage) (*MessagePayload, error) {
	var payload MessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, core.NewMalformedEventError("invalid message payload", err)
	}
	if payload.ID == "" || payload.ChannelID == "" || payload.Author.ID == "" {
		return nil, core.NewMalformedEventError("message payload missing required fields", nil)
	}
	return &payload, nil
}

// GuildPayload is the GUILD_CREATE / GUILD_DELETE event data.
type GuildPayload struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	OwnerID                  string `json:"owner_id"`
	Description              string `json:"description"`
	PreferredLocale          string `json:"preferred_locale"`
	SystemChannelID          string `json:"system_channel_id"`
	PublicUpdatesChannelID   string `json:"public_updates_channel_id"`
	SafetyAlertsChannelID    string `json:"safety_alerts_channel_id"`
	ApproximateMemberCount   int    `json:"approximate_member_count"`
	ApproximatePresenceCount int    `json:"approximate_presence_count"`
}

// DecodeGuildPayload parses guild lifecycle event data.
func DecodeGuildPayload(raw json.RawMessage) (*GuildPayload, error) {
	var payload GuildPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, core.NewMalformedEventError("invalid guild payload", err)
	}
	if payload.ID == "" {
		return nil, core.NewMalformedEventError("guild payload missing id", nil)
	}
	return &payload, nil
}

// NotificationChannelID resolves the channel the bot should post guild-level
// notices to when no operator-configured channel exists.
func (g *GuildPayload) NotificationChannelID() string {
	if g.PublicUpdatesChannelID != "" {
		return g.PublicUpdatesChannelID
	}
	if g.SafetyAlertsChannelID != "" {
		return g.SafetyAlertsChannelID
	}
	return g.SystemChannelID
}
