package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"aurabot/clients"
	"aurabot/core"
	"aurabot/embeds"
	"aurabot/models"
	"aurabot/utils"
)

var (
	imagePattern       = regexp.MustCompile(`^<@!?(\d+)>\s+generate image\s+(\d+)\s*(.*)$`)
	translatePattern   = regexp.MustCompile(`^<@!?(\d+)>\s+translate\s+(?:to\s+([A-Za-z][A-Za-z\-]*(?:\s*,\s*[A-Za-z][A-Za-z\-]*)*)\s+)?(.+)$`)
	auraChannelPattern = regexp.MustCompile(`^<@!?(\d+)>\s+set aura channel\s*$`)
)

var defaultTranslateTargets = []string{"fr", "es", "zh-Hant", "ja", "ko"}

// ProcessMessageCreate routes an inbound message through the command
// patterns and falls back to a conversational reply. Command patterns only
// fire when the message mentions the bot; anything else, mentioned or not,
// lands on the conversational handler. The bot never reacts to other bots
// or to itself.
func (u *GatewayUsecase) ProcessMessageCreate(ctx context.Context, event *models.InboundEvent) error {
	payload, err := models.DecodeMessagePayload(event.RawBody)
	if err != nil {
		return err
	}

	if payload.Author.Bot || payload.Author.ID == u.botUserID {
		return nil
	}

	log.Printf("📨 Routing message %s in channel %s (attempt %d)", payload.ID, payload.ChannelID, event.Attempt)

	notify := u.channelNotifier(payload.ChannelID)
	return u.runWithAttemptLadder(ctx, event.Attempt, notify, func(ctx context.Context) error {
		return u.routeMessage(ctx, payload)
	})
}

func (u *GatewayUsecase) routeMessage(ctx context.Context, payload *models.MessagePayload) error {
	content := strings.TrimSpace(payload.Content)

	if match := imagePattern.FindStringSubmatch(content); match != nil && match[1] == u.botUserID {
		return u.handleImageRequest(ctx, payload, match[2], strings.TrimSpace(match[3]))
	}
	if match := auraChannelPattern.FindStringSubmatch(content); match != nil && match[1] == u.botUserID {
		return u.handleAuraChannelRequest(ctx, payload)
	}
	if match := translatePattern.FindStringSubmatch(content); match != nil && match[1] == u.botUserID {
		return u.handleTranslateRequest(ctx, payload, match[2], strings.TrimSpace(match[3]))
	}

	return u.handleConversation(ctx, payload)
}

// handleImageRequest validates the requested count and prompt before any
// service call is made. Invalid requests produce a user-visible error embed
// and no generation.
func (u *GatewayUsecase) handleImageRequest(
	ctx context.Context,
	payload *models.MessagePayload,
	countArg, prompt string,
) error {
	count, err := strconv.Atoi(countArg)
	if err != nil {
		count = 0
	}

	if count < 1 || count > embeds.MaxEmbedsPerMessage {
		log.Printf("⚠️ Rejecting image request with count %d in channel %s", count, payload.ChannelID)
		message := fmt.Sprintf("I can only generate between 1 and %d images at a time.", embeds.MaxEmbedsPerMessage)
		return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusError, nil))
	}
	if prompt == "" {
		log.Printf("⚠️ Rejecting image request with empty prompt in channel %s", payload.ChannelID)
		message := "Tell me what to draw! Try `generate image 1 <your prompt>`."
		return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusError, nil))
	}

	urls, err := u.imageClient.GenerateImages(ctx, prompt, count)
	if err != nil {
		if errors.Is(err, core.ErrRateLimited) {
			message := "The image service is catching its breath. Try again in a minute."
			return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusWarning, nil))
		}
		return fmt.Errorf("failed to generate images: %w", err)
	}

	log.Printf("✅ Generated %d images for channel %s", len(urls), payload.ChannelID)
	imageEmbeds := embeds.MultiImageEmbeds("Generated images", prompt, urls, embeds.ColorImage)
	return u.postEmbeds(ctx, payload.ChannelID, imageEmbeds)
}

// handleAuraChannelRequest pins the current channel as the guild's notice
// channel. Requires the invoker to hold the guild-management capability.
func (u *GatewayUsecase) handleAuraChannelRequest(ctx context.Context, payload *models.MessagePayload) error {
	if payload.GuildID == "" {
		message := "Aura channels only exist inside a server."
		return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusError, nil))
	}
	if payload.Member == nil || int64(payload.Member.Permissions)&discordgo.PermissionAdministrator == 0 {
		log.Printf("⚠️ User %s lacks permission to set aura channel in guild %s", payload.Author.ID, payload.GuildID)
		message := "Only server administrators can set my aura channel."
		return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusError, nil))
	}

	if err := u.guildsService.ConfigureAuraChannel(ctx, payload.GuildID, payload.ChannelID); err != nil {
		return fmt.Errorf("failed to configure aura channel: %w", err)
	}

	message := "✨ This channel is now my aura channel. Guild notices and heartbeats land here."
	return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusSuccess, nil))
}

// handleTranslateRequest translates the text into the requested languages,
// defaulting to the standard target set when none are named.
func (u *GatewayUsecase) handleTranslateRequest(
	ctx context.Context,
	payload *models.MessagePayload,
	langArg, text string,
) error {
	if text == "" {
		message := "Give me something to translate! Try `translate to fr, es hello world`."
		return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusError, nil))
	}

	targets := defaultTranslateTargets
	if langArg != "" {
		targets = nil
		for _, lang := range strings.Split(langArg, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				targets = append(targets, lang)
			}
		}
	}

	translations, err := u.translateClient.Translate(ctx, text, targets)
	if err != nil {
		if errors.Is(err, core.ErrRateLimited) {
			message := "The translation service is catching its breath. Try again in a minute."
			return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusWarning, nil))
		}
		return fmt.Errorf("failed to translate: %w", err)
	}

	names, err := u.translateClient.LanguageNames(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to fetch language names, using codes: %v", err)
		names = map[string]string{}
	}

	fields := make([]models.EmbedField, 0, len(translations))
	for _, t := range translations {
		name := t.To
		if native, ok := names[t.To]; ok {
			name = native
		}
		fields = append(fields, models.EmbedField{Name: name, Value: t.Text})
	}

	log.Printf("✅ Translated text into %d languages for channel %s", len(fields), payload.ChannelID)
	return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageFieldEmbeds(fields, embeds.StatusInfo, nil))
}

// handleConversation asks the chat service for a reply and delivers it with
// the service-chosen accent color.
func (u *GatewayUsecase) handleConversation(ctx context.Context, payload *models.MessagePayload) error {
	prompt := utils.StripMentions(payload.Content)
	if strings.TrimSpace(prompt) == "" {
		message := "You rang? Say something and I'll answer."
		return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusInfo, nil))
	}

	response, err := u.chatClient.GenerateResponse(ctx, prompt)
	if err != nil {
		if errors.Is(err, core.ErrRateLimited) {
			message := "I'm thinking too hard right now. Give me a minute and ask again."
			return u.postEmbeds(ctx, payload.ChannelID, embeds.SystemMessageEmbeds(message, embeds.StatusWarning, nil))
		}
		return fmt.Errorf("failed to generate conversation reply: %w", err)
	}

	u.recordUsage(ctx, payload.GuildID, response)

	return u.postEmbeds(ctx, payload.ChannelID, embeds.BuildContentEmbeds(response.Content, response.Color))
}

// recordUsage is best-effort cost accounting; a bookkeeping failure never
// blocks delivery.
func (u *GatewayUsecase) recordUsage(ctx context.Context, guildID string, response *clients.ChatResponse) {
	if err := u.usageService.RecordChatUsage(ctx, guildID, response); err != nil {
		log.Printf("⚠️ Failed to record chat usage: %v", err)
	}
}
