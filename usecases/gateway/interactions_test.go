package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aurabot/clients"
	"aurabot/models"
)

func interactionEvent(t *testing.T, attempt int, payload models.InteractionPayload) *models.InboundEvent {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &models.InboundEvent{
		Kind:    models.EventKindApplicationCommand,
		RawBody: raw,
		Attempt: attempt,
	}
}

func commandPayload(name string) models.InteractionPayload {
	return models.InteractionPayload{
		ID:      "500000000000000001",
		Type:    2,
		Token:   "command-token",
		GuildID: "700000000000000001",
		Data:    &models.InteractionData{Name: name},
	}
}

func TestProcessInteraction(t *testing.T) {
	t.Run("help command delivers generated content and persists pages", func(t *testing.T) {
		u, deps := newTestUsecase(t)
		payload := commandPayload("help")

		deps.interactionsService.On("SaveInteraction", mock.Anything, payload.ID, payload.Token, mock.Anything).
			Return(&models.Interaction{DiscordID: payload.ID}, nil)
		response := &clients.ChatResponse{Content: "Here is what I can do!", Color: 0x9b59b6, Provider: "azure", Model: "gpt-4o"}
		deps.chatClient.On("GenerateResponse", mock.Anything, mock.Anything).Return(response, nil)
		deps.usageService.On("RecordChatUsage", mock.Anything, payload.GuildID, response).Return(nil)
		deps.discordClient.On("EditOriginalResponse", mock.Anything, payload.Token, mock.MatchedBy(func(out models.MessagePayloadOut) bool {
			return len(out.Embeds) == 1 && out.Embeds[0].Color == 0x9b59b6 && len(out.Components) == 0
		})).Return(&models.DeliveredMessage{ID: "m1"}, nil)
		deps.interactionsService.On("SaveResponse", mock.Anything, payload.ID, mock.Anything, mock.Anything, mock.Anything).
			Return(&models.InteractionResponse{ID: "ir_1", TotalPages: 1}, nil)

		err := u.ProcessInteraction(context.Background(), interactionEvent(t, 1, payload))

		require.NoError(t, err)
		deps.discordClient.AssertExpectations(t)
		deps.interactionsService.AssertExpectations(t)
	})

	t.Run("chat service failure falls back to static help text", func(t *testing.T) {
		u, deps := newTestUsecase(t)
		payload := commandPayload("help")

		deps.interactionsService.On("SaveInteraction", mock.Anything, payload.ID, payload.Token, mock.Anything).
			Return(&models.Interaction{DiscordID: payload.ID}, nil)
		deps.chatClient.On("GenerateResponse", mock.Anything, mock.Anything).
			Return(nil, context.DeadlineExceeded)
		deps.discordClient.On("EditOriginalResponse", mock.Anything, payload.Token, mock.MatchedBy(func(out models.MessagePayloadOut) bool {
			return len(out.Embeds) == 1 && out.Embeds[0].Description == helpFallback
		})).Return(&models.DeliveredMessage{ID: "m1"}, nil)
		deps.interactionsService.On("SaveResponse", mock.Anything, payload.ID, mock.Anything, mock.Anything, mock.Anything).
			Return(&models.InteractionResponse{ID: "ir_1", TotalPages: 1}, nil)

		err := u.ProcessInteraction(context.Background(), interactionEvent(t, 1, payload))

		require.NoError(t, err)
		deps.discordClient.AssertExpectations(t)
		deps.usageService.AssertNotCalled(t, "RecordChatUsage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("about command folds guild spend into the prompt", func(t *testing.T) {
		u, deps := newTestUsecase(t)
		payload := commandPayload("about")

		deps.interactionsService.On("SaveInteraction", mock.Anything, payload.ID, payload.Token, mock.Anything).
			Return(&models.Interaction{DiscordID: payload.ID}, nil)
		deps.usageService.On("TotalCostForGuild", mock.Anything, payload.GuildID).
			Return(decimal.NewFromFloat(1.25), nil)
		response := &clients.ChatResponse{Content: "I'm Aura!", Color: 0x0000ff, Provider: "azure", Model: "gpt-4o"}
		deps.chatClient.On("GenerateResponse", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "$1.25")
		})).Return(response, nil)
		deps.usageService.On("RecordChatUsage", mock.Anything, payload.GuildID, response).Return(nil)
		deps.discordClient.On("EditOriginalResponse", mock.Anything, payload.Token, mock.Anything).
			Return(&models.DeliveredMessage{ID: "m1"}, nil)
		deps.interactionsService.On("SaveResponse", mock.Anything, payload.ID, mock.Anything, mock.Anything, mock.Anything).
			Return(&models.InteractionResponse{ID: "ir_1", TotalPages: 1}, nil)

		err := u.ProcessInteraction(context.Background(), interactionEvent(t, 1, payload))

		require.NoError(t, err)
		deps.chatClient.AssertExpectations(t)
		deps.usageService.AssertExpectations(t)
	})

	t.Run("unknown command is stored but not dispatched", func(t *testing.T) {
		u, deps := newTestUsecase(t)
		payload := commandPayload("dance")

		deps.interactionsService.On("SaveInteraction", mock.Anything, payload.ID, payload.Token, mock.Anything).
			Return(&models.Interaction{DiscordID: payload.ID}, nil)

		err := u.ProcessInteraction(context.Background(), interactionEvent(t, 1, payload))

		require.NoError(t, err)
		deps.chatClient.AssertNotCalled(t, "GenerateResponse", mock.Anything, mock.Anything)
		deps.discordClient.AssertNotCalled(t, "EditOriginalResponse", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ping is acknowledged without storage", func(t *testing.T) {
		u, deps := newTestUsecase(t)
		payload := models.InteractionPayload{ID: "500000000000000001", Type: 1, Token: "t"}

		err := u.ProcessInteraction(context.Background(), interactionEvent(t, 1, payload))

		require.NoError(t, err)
		deps.interactionsService.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
