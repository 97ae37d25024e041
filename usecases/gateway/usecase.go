package gateway

import (
	"context"
	"log"

	"aurabot/clients"
	"aurabot/embeds"
	"aurabot/metrics"
	"aurabot/models"
	"aurabot/services"
)

// Attempt ladder positions. The relay redelivers failed events with an
// incremented attempt counter and gives up after the terminal attempt.
const (
	noticeAttempt   = 2
	terminalAttempt = 10
)

const (
	recoveringNotice = "⚡ My circuits are still recovering from a glitch. Hold tight while I retry that for you."
	glitchNotice     = "⚡ I hit a glitch processing that, but my self-healing is kicking in. I'll retry in a moment."
	terminalNotice   = "💔 I couldn't process that even after several attempts. Please try again later."
)

type GatewayUsecase struct {
	discordClient       clients.DiscordClient
	chatClient          clients.ChatClient
	imageClient         clients.ImageClient
	translateClient     clients.TranslateClient
	guildsService       services.GuildsService
	interactionsService services.InteractionsService
	usageService        services.UsageService
	metrics             *metrics.Metrics

	botUserID  string
	botVersion string

	commands map[string]CommandHandler
}

func NewGatewayUsecase(
	discordClient clients.DiscordClient,
	chatClient clients.ChatClient,
	imageClient clients.ImageClient,
	translateClient clients.TranslateClient,
	guildsService services.GuildsService,
	interactionsService services.InteractionsService,
	usageService services.UsageService,
	m *metrics.Metrics,
	botUserID string,
	botVersion string,
) *GatewayUsecase {
	u := &GatewayUsecase{
		discordClient:       discordClient,
		chatClient:          chatClient,
		imageClient:         imageClient,
		translateClient:     translateClient,
		guildsService:       guildsService,
		interactionsService: interactionsService,
		usageService:        usageService,
		metrics:             m,
		botUserID:           botUserID,
		botVersion:          botVersion,
	}
	u.commands = map[string]CommandHandler{
		"help":  u.handleHelpCommand,
		"about": u.handleAboutCommand,
	}
	return u
}

// notifyFunc delivers a user-visible status notice to wherever the event
// came from. Notice delivery is best-effort.
type notifyFunc func(ctx context.Context, content string, status embeds.Status)

// runWithAttemptLadder wraps event processing with the redelivery
// escalation ladder. On the second attempt the user is told a retry is in
// flight before processing. A first-attempt failure posts a glitch notice
// and propagates so the relay redelivers; the terminal attempt posts a
// giving-up notice and swallows the error so redelivery stops; everything
// in between propagates silently.
func (u *GatewayUsecase) runWithAttemptLadder(
	ctx context.Context,
	attempt int,
	notify notifyFunc,
	process func(ctx context.Context) error,
) error {
	if attempt == noticeAttempt {
		notify(ctx, recoveringNotice, embeds.StatusWarning)
	}

	err := process(ctx)
	if err == nil {
		return nil
	}

	switch {
	case attempt == 1:
		log.Printf("⚠️ Event processing failed on first attempt, awaiting redelivery: %v", err)
		notify(ctx, glitchNotice, embeds.StatusWarning)
		return err
	case attempt >= terminalAttempt:
		log.Printf("❌ Event processing failed on terminal attempt %d, giving up: %v", attempt, err)
		u.metrics.TerminalAttempts.Inc()
		notify(ctx, terminalNotice, embeds.StatusError)
		return nil
	default:
		log.Printf("⚠️ Event processing failed on attempt %d, awaiting redelivery: %v", attempt, err)
		return err
	}
}

// channelNotifier posts status notices as system-message embeds to a
// channel.
func (u *GatewayUsecase) channelNotifier(channelID string) notifyFunc {
	return func(ctx context.Context, content string, status embeds.Status) {
		payload := models.MessagePayloadOut{
			Embeds:     embeds.SystemMessageEmbeds(content, status, nil),
			Components: []models.ActionRow{},
		}
		if _, err := u.discordClient.PostChannelMessage(ctx, channelID, payload); err != nil {
			log.Printf("⚠️ Failed to deliver status notice to channel %s: %v", channelID, err)
		}
	}
}

// interactionNotifier edits the deferred original response with a status
// notice.
func (u *GatewayUsecase) interactionNotifier(token string) notifyFunc {
	return func(ctx context.Context, content string, status embeds.Status) {
		payload := models.MessagePayloadOut{
			Embeds:     embeds.SystemMessageEmbeds(content, status, nil),
			Components: []models.ActionRow{},
		}
		if _, err := u.discordClient.EditOriginalResponse(ctx, token, payload); err != nil {
			log.Printf("⚠️ Failed to deliver status notice for interaction: %v", err)
		}
	}
}

// postEmbeds delivers an embed set to a channel in wire-limit batches.
func (u *GatewayUsecase) postEmbeds(ctx context.Context, channelID string, all []models.Embed) error {
	for _, batch := range embeds.SplitEmbeds(all) {
		payload := models.MessagePayloadOut{
			Embeds:     batch,
			Components: []models.ActionRow{},
		}
		if _, err := u.discordClient.PostChannelMessage(ctx, channelID, payload); err != nil {
			return err
		}
	}
	return nil
}
