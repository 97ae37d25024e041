package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"aurabot/core"
	"aurabot/embeds"
	"aurabot/models"
)

// CommandHandler processes one named application command against an
// already-deferred interaction.
type CommandHandler func(ctx context.Context, payload *models.InteractionPayload) error

// CallbackType picks the immediate acknowledgement for an interaction: pong
// for pings, a deferred in-place update for component clicks, and a deferred
// fresh message for everything else.
func (u *GatewayUsecase) CallbackType(interactionType int) int {
	switch interactionType {
	case int(discordgo.InteractionPing):
		return int(discordgo.InteractionResponsePong)
	case int(discordgo.InteractionMessageComponent):
		return int(discordgo.InteractionResponseDeferredMessageUpdate)
	default:
		return int(discordgo.InteractionResponseDeferredChannelMessageWithSource)
	}
}

// ProcessInteraction stores the interaction and dispatches it. Unknown
// command names and unknown component IDs are deliberate no-ops so new
// surface area can roll out ahead of handler support.
func (u *GatewayUsecase) ProcessInteraction(ctx context.Context, event *models.InboundEvent) error {
	payload, err := models.DecodeInteractionPayload(event.RawBody)
	if err != nil {
		return err
	}

	if payload.Type == int(discordgo.InteractionPing) {
		return nil
	}

	log.Printf("📨 Processing interaction %s (type %d), attempt %d", payload.ID, payload.Type, event.Attempt)

	if _, err := u.interactionsService.SaveInteraction(ctx, payload.ID, payload.Token, event.RawBody); err != nil {
		return fmt.Errorf("failed to save interaction: %w", err)
	}

	notify := u.interactionNotifier(payload.Token)
	return u.runWithAttemptLadder(ctx, event.Attempt, notify, func(ctx context.Context) error {
		switch payload.Type {
		case int(discordgo.InteractionApplicationCommand):
			return u.dispatchCommand(ctx, payload)
		case int(discordgo.InteractionMessageComponent):
			return u.AdvancePagination(ctx, payload)
		default:
			log.Printf("📋 Ignoring interaction type %d", payload.Type)
			return nil
		}
	})
}

func (u *GatewayUsecase) dispatchCommand(ctx context.Context, payload *models.InteractionPayload) error {
	if payload.Data == nil {
		return nil
	}

	handler, ok := u.commands[payload.Data.Name]
	if !ok {
		log.Printf("📋 Ignoring unknown command: %s", payload.Data.Name)
		return nil
	}

	return handler(ctx, payload)
}

const helpFallback = "**Here's what I can do:**\n" +
	"- Mention me with any message and I'll chat back.\n" +
	"- `@Aura generate image <n> <prompt>` draws up to 10 images.\n" +
	"- `@Aura translate to fr, ja <text>` translates for you.\n" +
	"- Admins: `@Aura set aura channel` picks where my notices go."

const aboutFallback = "I'm Aura, a conversational companion for your server. " +
	"I chat, draw, and translate, and I keep my glow in your aura channel."

func (u *GatewayUsecase) handleHelpCommand(ctx context.Context, payload *models.InteractionPayload) error {
	prompt := "Write a short, friendly help message listing your abilities: " +
		"chatting when mentioned, generating up to 10 images with 'generate image <n> <prompt>', " +
		"translating with 'translate to <langs> <text>', and letting admins run 'set aura channel'."
	return u.respondWithGenerated(ctx, payload, prompt, helpFallback)
}

func (u *GatewayUsecase) handleAboutCommand(ctx context.Context, payload *models.InteractionPayload) error {
	prompt := "Introduce yourself in a few sentences: you are Aura, a glowing conversational " +
		"companion bot that chats, draws images, and translates text."
	if payload.GuildID != "" {
		if total, err := u.usageService.TotalCostForGuild(ctx, payload.GuildID); err != nil {
			log.Printf("⚠️ Failed to load guild spend for about command: %v", err)
		} else if total.IsPositive() {
			prompt += fmt.Sprintf(" Mention, playfully, that thinking for this server has cost about $%s so far.",
				total.StringFixed(2))
		}
	}
	return u.respondWithGenerated(ctx, payload, prompt, aboutFallback)
}

// respondWithGenerated delivers service-generated command content, falling
// back to static copy when the service is unavailable.
func (u *GatewayUsecase) respondWithGenerated(
	ctx context.Context,
	payload *models.InteractionPayload,
	prompt, fallback string,
) error {
	content := fallback
	color := embeds.ColorBlue

	response, err := u.chatClient.GenerateResponse(ctx, prompt)
	if err != nil {
		log.Printf("⚠️ Chat service unavailable for command content, using fallback: %v", err)
	} else {
		content = response.Content
		color = response.Color
		u.recordUsage(ctx, payload.GuildID, response)
	}

	pages := embeds.BuildContentEmbeds(content, color)
	return u.RespondToInteraction(ctx, payload, pages, nil)
}

// RespondToInteraction edits the deferred original response with the first
// page of the given content and persists the full page set so pagination
// controls can replay the rest. Exactly one of embedPages or contentPages
// should be non-empty. When embed delivery is rejected by the wire, the
// response degrades to a plain-text notice.
func (u *GatewayUsecase) RespondToInteraction(
	ctx context.Context,
	payload *models.InteractionPayload,
	embedPages []models.Embed,
	contentPages []string,
) error {
	totalPages := len(embedPages)
	if totalPages == 0 {
		totalPages = len(contentPages)
	}
	if totalPages == 0 {
		return fmt.Errorf("interaction response has no pages")
	}

	out := models.MessagePayloadOut{Components: []models.ActionRow{}}
	if len(embedPages) > 0 {
		out.Embeds = []models.Embed{embedPages[0]}
	} else {
		out.Content = contentPages[0]
	}
	if totalPages > 1 {
		out.Components = []models.ActionRow{embeds.PaginationControls(0, totalPages)}
	}

	if _, err := u.discordClient.EditOriginalResponse(ctx, payload.Token, out); err != nil {
		var deliveryErr *core.DeliveryError
		if len(embedPages) > 0 && errors.As(err, &deliveryErr) {
			log.Printf("⚠️ Embed delivery rejected (%d), degrading to plain text: %v", deliveryErr.StatusCode, err)
			plain := models.MessagePayloadOut{
				Content:    strings.TrimSpace(embedPages[0].Title + "\n" + embedPages[0].Description),
				Components: []models.ActionRow{},
			}
			if _, err := u.discordClient.EditOriginalResponse(ctx, payload.Token, plain); err != nil {
				return fmt.Errorf("failed to deliver degraded response: %w", err)
			}
		} else {
			return fmt.Errorf("failed to deliver interaction response: %w", err)
		}
	}

	if _, err := u.interactionsService.SaveResponse(ctx, payload.ID, string(payloadData(payload)), embedPages, contentPages); err != nil {
		return fmt.Errorf("failed to persist interaction response: %w", err)
	}

	log.Printf("✅ Delivered interaction response for %s (%d pages)", payload.ID, totalPages)
	return nil
}

func payloadData(payload *models.InteractionPayload) []byte {
	if payload.Data == nil {
		return []byte("{}")
	}
	encoded, err := json.Marshal(payload.Data)
	if err != nil {
		return []byte("{}")
	}
	return encoded
}
