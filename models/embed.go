package models

// Wire-format message types for the Discord REST API. Field names and limits
// follow the v10 message resource: at most 25 fields per embed and at most
// 10 embeds per delivery call.

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedImage struct {
	URL string `json:"url"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Type        string       `json:"type,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Color       int          `json:"color,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Image       *EmbedImage  `json:"image,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// Button is a message component button. Type is always 2 on the wire.
type Button struct {
	Type     int    `json:"type"`
	Style    int    `json:"style"`
	Label    string `json:"label,omitempty"`
	CustomID string `json:"custom_id,omitempty"`
	Disabled bool   `json:"disabled"`
}

// ActionRow groups buttons. Type is always 1 on the wire.
type ActionRow struct {
	Type       int      `json:"type"`
	Components []Button `json:"components"`
}

// MessagePayloadOut is the body of an outbound message create/edit call.
type MessagePayloadOut struct {
	Content    string      `json:"content,omitempty"`
	Embeds     []Embed     `json:"embeds,omitempty"`
	Components []ActionRow `json:"components"`
}

// DeliveredMessage is the subset of the Discord message resource the gateway
// reads back from delivery responses.
type DeliveredMessage struct {
	ID         string      `json:"id"`
	ChannelID  string      `json:"channel_id"`
	Content    string      `json:"content"`
	Embeds     []Embed     `json:"embeds"`
	Components []ActionRow `json:"components"`
}
