package guilds

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"aurabot/db"
	"aurabot/models"
)

type GuildsService struct {
	guildsRepo *db.PostgresGuildsRepository
}

func NewGuildsService(guildsRepo *db.PostgresGuildsRepository) *GuildsService {
	return &GuildsService{guildsRepo: guildsRepo}
}

// UpsertGuild creates or refreshes the guild record from a gateway payload
// and returns the stored row, including onboarding state.
func (s *GuildsService) UpsertGuild(ctx context.Context, payload *models.GuildPayload) (*models.Guild, error) {
	log.Printf("📋 Starting to upsert guild: %s (%s)", payload.ID, payload.Name)

	if payload.ID == "" {
		return nil, fmt.Errorf("guild_id cannot be empty")
	}

	guild := &models.Guild{
		GuildID: payload.ID,
		Name:    payload.Name,
		OwnerID: payload.OwnerID,
	}
	if channelID := payload.NotificationChannelID(); channelID != "" {
		guild.SystemChannelID = &channelID
	}

	if err := s.guildsRepo.UpsertGuild(ctx, guild); err != nil {
		return nil, fmt.Errorf("failed to upsert guild: %w", err)
	}

	maybeGuild, err := s.guildsRepo.GetGuildByID(ctx, payload.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild after upsert: %w", err)
	}
	if !maybeGuild.IsPresent() {
		return nil, fmt.Errorf("guild not found after upsert: %s", payload.ID)
	}

	log.Printf("📋 Completed successfully - upserted guild: %s", payload.ID)
	return maybeGuild.MustGet(), nil
}

// GetGuildByID fetches a guild record by Discord guild ID
func (s *GuildsService) GetGuildByID(ctx context.Context, guildID string) (mo.Option[*models.Guild], error) {
	if guildID == "" {
		return mo.None[*models.Guild](), fmt.Errorf("guild_id cannot be empty")
	}
	return s.guildsRepo.GetGuildByID(ctx, guildID)
}

// MarkInitialized records that the welcome message was delivered
func (s *GuildsService) MarkInitialized(
	ctx context.Context,
	guildID string,
	initialized time.Time,
	botVersion string,
) error {
	log.Printf("📋 Starting to mark guild initialized: %s (version %s)", guildID, botVersion)

	if guildID == "" {
		return fmt.Errorf("guild_id cannot be empty")
	}
	if botVersion == "" {
		return fmt.Errorf("bot_version cannot be empty")
	}

	if err := s.guildsRepo.SetInitialized(ctx, guildID, initialized, botVersion); err != nil {
		return fmt.Errorf("failed to mark guild initialized: %w", err)
	}

	log.Printf("📋 Completed successfully - marked guild initialized: %s", guildID)
	return nil
}

// Deinitialize re-arms onboarding after the bot was removed from the guild
func (s *GuildsService) Deinitialize(ctx context.Context, guildID string) error {
	log.Printf("📋 Starting to deinitialize guild: %s", guildID)

	if guildID == "" {
		return fmt.Errorf("guild_id cannot be empty")
	}

	if err := s.guildsRepo.ClearInitialized(ctx, guildID); err != nil {
		return fmt.Errorf("failed to deinitialize guild: %w", err)
	}

	log.Printf("📋 Completed successfully - deinitialized guild: %s", guildID)
	return nil
}

// ConfigureAuraChannel records the operator-chosen notification channel
func (s *GuildsService) ConfigureAuraChannel(ctx context.Context, guildID, channelID string) error {
	log.Printf("📋 Starting to configure aura channel for guild %s: %s", guildID, channelID)

	if guildID == "" {
		return fmt.Errorf("guild_id cannot be empty")
	}
	if channelID == "" {
		return fmt.Errorf("channel_id cannot be empty")
	}

	if err := s.guildsRepo.SetAuraChannel(ctx, guildID, channelID); err != nil {
		return fmt.Errorf("failed to configure aura channel: %w", err)
	}

	log.Printf("📋 Completed successfully - configured aura channel for guild %s", guildID)
	return nil
}

// ListInitializedGuilds returns all guilds that completed onboarding
func (s *GuildsService) ListInitializedGuilds(ctx context.Context) ([]*models.Guild, error) {
	return s.guildsRepo.ListInitializedGuilds(ctx)
}
