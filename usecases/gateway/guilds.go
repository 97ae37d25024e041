package gateway

import (
	"context"
	"fmt"
	"log"
	"time"

	"aurabot/embeds"
	"aurabot/models"
)

// ProcessGuildCreate upserts the guild record and runs onboarding: a
// first-time install gets the welcome embed, a version bump since the last
// install gets an update notice, and anything else is a silent refresh.
func (u *GatewayUsecase) ProcessGuildCreate(ctx context.Context, event *models.InboundEvent) error {
	payload, err := models.DecodeGuildPayload(event.RawBody)
	if err != nil {
		return err
	}

	log.Printf("📨 Guild create for %s (%s), attempt %d", payload.ID, payload.Name, event.Attempt)

	return u.runWithAttemptLadder(ctx, event.Attempt, u.noopNotifier(), func(ctx context.Context) error {
		guild, err := u.guildsService.UpsertGuild(ctx, payload)
		if err != nil {
			return fmt.Errorf("failed to upsert guild: %w", err)
		}

		switch {
		case guild.Initialized == nil:
			return u.deliverWelcome(ctx, guild)
		case guild.BotVersion == nil || *guild.BotVersion != u.botVersion:
			return u.deliverVersionNotice(ctx, guild)
		default:
			return nil
		}
	})
}

// ProcessGuildDelete re-arms onboarding so a future re-install is welcomed
// again. The guild row itself is kept.
func (u *GatewayUsecase) ProcessGuildDelete(ctx context.Context, event *models.InboundEvent) error {
	payload, err := models.DecodeGuildPayload(event.RawBody)
	if err != nil {
		return err
	}

	log.Printf("📨 Guild delete for %s, attempt %d", payload.ID, event.Attempt)

	return u.runWithAttemptLadder(ctx, event.Attempt, u.noopNotifier(), func(ctx context.Context) error {
		return u.guildsService.Deinitialize(ctx, payload.ID)
	})
}

func (u *GatewayUsecase) deliverWelcome(ctx context.Context, guild *models.Guild) error {
	channelID := guild.NotificationChannelID()
	if channelID != "" {
		welcome := []models.Embed{{
			Title: "👋 Hey, I'm Aura!",
			Description: "Thanks for adding me to **" + guild.Name + "**! " +
				"Mention me anywhere and I'll chat back.",
			Color: embeds.ColorGreen,
			Fields: []models.EmbedField{
				{Name: "💬 Chat", Value: "Mention me with any message and I'll reply."},
				{Name: "🎨 Images", Value: "`@Aura generate image <n> <prompt>` draws up to 10 images."},
				{Name: "🌍 Translate", Value: "`@Aura translate to fr, ja <text>` or just `@Aura translate <text>`."},
				{Name: "✨ Aura channel", Value: "Admins can run `@Aura set aura channel` to pick where my notices go."},
			},
		}}
		if err := u.postEmbeds(ctx, channelID, welcome); err != nil {
			return fmt.Errorf("failed to deliver welcome message: %w", err)
		}
	} else {
		log.Printf("⚠️ Guild %s has no notification channel, skipping welcome message", guild.GuildID)
	}

	if err := u.guildsService.MarkInitialized(ctx, guild.GuildID, time.Now(), u.botVersion); err != nil {
		return fmt.Errorf("failed to mark guild initialized: %w", err)
	}

	log.Printf("✅ Completed onboarding for guild %s", guild.GuildID)
	return nil
}

func (u *GatewayUsecase) deliverVersionNotice(ctx context.Context, guild *models.Guild) error {
	channelID := guild.NotificationChannelID()
	if channelID != "" {
		message := fmt.Sprintf("I just upgraded myself to version %s. Same aura, fresher circuits.", u.botVersion)
		notice := embeds.SystemMessageEmbeds(message, embeds.StatusInfo, nil)
		if err := u.postEmbeds(ctx, channelID, notice); err != nil {
			return fmt.Errorf("failed to deliver version notice: %w", err)
		}
	}

	initialized := time.Now()
	if guild.Initialized != nil {
		initialized = *guild.Initialized
	}
	if err := u.guildsService.MarkInitialized(ctx, guild.GuildID, initialized, u.botVersion); err != nil {
		return fmt.Errorf("failed to record bot version: %w", err)
	}

	log.Printf("✅ Delivered version notice to guild %s", guild.GuildID)
	return nil
}

// noopNotifier is used for events with no user-facing origin to notify.
func (u *GatewayUsecase) noopNotifier() notifyFunc {
	return func(ctx context.Context, content string, status embeds.Status) {}
}
