package clients

import (
	"context"

	"aurabot/models"
)

// DiscordClient is the outbound REST sink. Two target kinds exist: channel
// messages (unlimited lifetime) and interaction webhooks (token-scoped,
// time-limited).
type DiscordClient interface {
	PostChannelMessage(ctx context.Context, channelID string, payload models.MessagePayloadOut) (*models.DeliveredMessage, error)
	CreateInteractionCallback(ctx context.Context, interactionID, token string, callbackType int, data *models.MessagePayloadOut) error
	CreateFollowupMessage(ctx context.Context, token string, payload models.MessagePayloadOut) (*models.DeliveredMessage, error)
	GetOriginalResponse(ctx context.Context, token string) (*models.DeliveredMessage, error)
	EditOriginalResponse(ctx context.Context, token string, payload models.MessagePayloadOut) (*models.DeliveredMessage, error)
	DeleteOriginalResponse(ctx context.Context, token string) error
	GetFollowupMessage(ctx context.Context, token, messageID string) (*models.DeliveredMessage, error)
	EditFollowupMessage(ctx context.Context, token, messageID string, payload models.MessagePayloadOut) (*models.DeliveredMessage, error)
	DeleteFollowupMessage(ctx context.Context, token, messageID string) error
	GetGuildByID(ctx context.Context, guildID string) (*DiscordGuild, error)
}

// DiscordGuild is the subset of the guild resource the gateway reads.
type DiscordGuild struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	OwnerID                string `json:"owner_id"`
	SystemChannelID        string `json:"system_channel_id"`
	PublicUpdatesChannelID string `json:"public_updates_channel_id"`
	SafetyAlertsChannelID  string `json:"safety_alerts_channel_id"`
}

// NotificationChannelID resolves the channel guild-level notices go to.
func (g *DiscordGuild) NotificationChannelID() string {
	if g.PublicUpdatesChannelID != "" {
		return g.PublicUpdatesChannelID
	}
	if g.SafetyAlertsChannelID != "" {
		return g.SafetyAlertsChannelID
	}
	return g.SystemChannelID
}

// ChatResponse is a normalized chat-completion result. Color is the accent
// color chosen by the service, normalized to an int regardless of whether
// the provider returned it as a hex string or a number.
type ChatResponse struct {
	Content      string
	Color        int
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
}

// ChatClient generates conversational responses using a fixed system
// instruction.
type ChatClient interface {
	GenerateResponse(ctx context.Context, text string) (*ChatResponse, error)
}

// ImageClient generates images from a prompt. Count is capped at 10 by the
// caller before the service is invoked.
type ImageClient interface {
	GenerateImages(ctx context.Context, prompt string, count int) ([]string, error)
}

// Translation is one translated rendering of the source text.
type Translation struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// TranslateClient translates text into target languages and exposes the
// language-code to native-name lookup table.
type TranslateClient interface {
	Translate(ctx context.Context, text string, targetLangs []string) ([]Translation, error)
	LanguageNames(ctx context.Context) (map[string]string, error)
}
