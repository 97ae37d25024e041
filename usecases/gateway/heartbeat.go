package gateway

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/gammazero/workerpool"

	"aurabot/embeds"
)

const heartbeatWorkers = 5

const heartbeatFallback = "💓 Just checking in! What's everyone up to? Mention me if you want to chat."

// Heartbeat generates one engagement prompt and broadcasts it to the notice
// channel of every initialized guild. Delivery to each guild is independent;
// a failed guild never blocks the rest.
func (u *GatewayUsecase) Heartbeat(ctx context.Context) error {
	guilds, err := u.guildsService.ListInitializedGuilds(ctx)
	if err != nil {
		return fmt.Errorf("failed to list guilds for heartbeat: %w", err)
	}
	if len(guilds) == 0 {
		log.Printf("📋 Heartbeat skipped, no initialized guilds")
		return nil
	}

	content := heartbeatFallback
	color := embeds.ColorBlue
	prompt := "Write one short, playful message to re-engage a quiet Discord server. " +
		"Invite people to chat with you, ask for an image, or try a translation."
	if response, err := u.chatClient.GenerateResponse(ctx, prompt); err != nil {
		log.Printf("⚠️ Chat service unavailable for heartbeat content, using fallback: %v", err)
	} else {
		content = response.Content
		color = response.Color
		u.recordUsage(ctx, "", response)
	}

	broadcast := embeds.BuildContentEmbeds(content, color)

	var delivered, failed atomic.Int64
	wp := workerpool.New(heartbeatWorkers)
	for _, guild := range guilds {
		channelID := guild.NotificationChannelID()
		if channelID == "" {
			continue
		}
		wp.Submit(func() {
			if err := u.postEmbeds(ctx, channelID, broadcast); err != nil {
				log.Printf("⚠️ Heartbeat delivery failed for guild %s: %v", guild.GuildID, err)
				failed.Add(1)
				return
			}
			delivered.Add(1)
		})
	}
	wp.StopWait()

	log.Printf("✅ Heartbeat broadcast complete: %d delivered, %d failed", delivered.Load(), failed.Load())
	return nil
}
