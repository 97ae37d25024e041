package models

import (
	"encoding/json"
	"time"

	"aurabot/core"
)

// Interaction is a stored user-triggered event requiring a time-limited
// response. The token is the sole capability needed to deliver that response
// and is treated as a secret.
type Interaction struct {
	DiscordID string    `db:"discord_id" json:"discord_id"`
	Token     string    `db:"token"      json:"token"`
	Data      string    `db:"data"       json:"data"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// InteractionResponse captures a delivered, possibly paginated response so
// pagination controls can replay it later. Invariant: 0 <= CurrentPage <
// TotalPages.
type InteractionResponse struct {
	ID            string    `db:"id"             json:"id"`
	InteractionID string    `db:"interaction_id" json:"interaction_id"`
	Data          string    `db:"data"           json:"data"`
	TotalPages    int       `db:"total_pages"    json:"total_pages"`
	CurrentPage   int       `db:"current_page"   json:"current_page"`
	Embeds        *string   `db:"embeds"         json:"embeds"`
	Content       *string   `db:"content"        json:"content"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// EmbedPages decodes the stored embed pages, if this response was delivered
// as embeds.
func (r *InteractionResponse) EmbedPages() ([]Embed, error) {
	if r.Embeds == nil {
		return nil, nil
	}
	var pages []Embed
	if err := json.Unmarshal([]byte(*r.Embeds), &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// ContentPages decodes the stored plain-text pages, if this response was
// delivered as chunked text.
func (r *InteractionResponse) ContentPages() ([]string, error) {
	if r.Content == nil {
		return nil, nil
	}
	var pages []string
	if err := json.Unmarshal([]byte(*r.Content), &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// InteractionUser identifies the invoking user.
type InteractionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// InteractionMember is the guild-member view of the invoking user.
type InteractionMember struct {
	User        InteractionUser `json:"user"`
	Permissions PermissionSet   `json:"permissions"`
}

// InteractionData is the command/component-specific part of an interaction.
type InteractionData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CustomID string `json:"custom_id"`
}

// InteractionRef points a component interaction back at the interaction
// whose response message carries the component.
type InteractionRef struct {
	ID string `json:"id"`
}

// InteractionMessage is the message a component interaction was triggered
// on.
type InteractionMessage struct {
	ID          string          `json:"id"`
	Interaction *InteractionRef `json:"interaction,omitempty"`
}

// InteractionPayload is the INTERACTION_CREATE event data.
type InteractionPayload struct {
	ID            string              `json:"id"`
	ApplicationID string              `json:"application_id"`
	Type          int                 `json:"type"`
	Token         string              `json:"token"`
	ChannelID     string              `json:"channel_id"`
	GuildID       string              `json:"guild_id"`
	Data          *InteractionData    `json:"data,omitempty"`
	Member        *InteractionMember  `json:"member,omitempty"`
	User          *InteractionUser    `json:"user,omitempty"`
	Message       *InteractionMessage `json:"message,omitempty"`
}

// DecodeInteractionPayload parses INTERACTION_CREATE event data, failing
// fast on missing required fields.
func DecodeInteractionPayload(raw json.RawMessage) (*InteractionPayload, error) {
	var payload InteractionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, core.NewMalformedEventError("invalid interaction payload", err)
	}
	if payload.ID == "" || payload.Type == 0 {
		return nil, core.NewMalformedEventError("interaction payload missing required fields", nil)
	}
	return &payload, nil
}

// AuthorID resolves the invoking user's ID from either the guild member or
// the DM user object.
func (p *InteractionPayload) AuthorID() string {
	if p.Member != nil {
		return p.Member.User.ID
	}
	if p.User != nil {
		return p.User.ID
	}
	return ""
}
