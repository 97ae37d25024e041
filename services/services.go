package services

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/shopspring/decimal"

	"aurabot/clients"
	"aurabot/models"
)

// GuildsService manages the persistent guild lifecycle records
type GuildsService interface {
	UpsertGuild(ctx context.Context, payload *models.GuildPayload) (*models.Guild, error)
	GetGuildByID(ctx context.Context, guildID string) (mo.Option[*models.Guild], error)
	MarkInitialized(ctx context.Context, guildID string, initialized time.Time, botVersion string) error
	Deinitialize(ctx context.Context, guildID string) error
	ConfigureAuraChannel(ctx context.Context, guildID, channelID string) error
	ListInitializedGuilds(ctx context.Context) ([]*models.Guild, error)
}

// InteractionsService stores interactions and their paginated responses
type InteractionsService interface {
	SaveInteraction(ctx context.Context, discordID, token string, rawData []byte) (*models.Interaction, error)
	GetInteractionByDiscordID(ctx context.Context, discordID string) (mo.Option[*models.Interaction], error)
	SaveResponse(
		ctx context.Context,
		interactionID, wireData string,
		embedPages []models.Embed,
		contentPages []string,
	) (*models.InteractionResponse, error)
	GetLatestResponse(ctx context.Context, interactionID string) (mo.Option[*models.InteractionResponse], error)
	SetCurrentPage(ctx context.Context, responseID string, currentPage int) error
}

// UsageService records chat-completion spend per guild
type UsageService interface {
	RecordChatUsage(ctx context.Context, guildID string, response *clients.ChatResponse) error
	TotalCostForGuild(ctx context.Context, guildID string) (decimal.Decimal, error)
}
