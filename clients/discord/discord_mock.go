package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"aurabot/clients"
	"aurabot/models"
)

// MockDiscordClient is a mock implementation of the clients.DiscordClient interface
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) PostChannelMessage(
	ctx context.Context,
	channelID string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	args := m.Called(ctx, channelID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredMessage), args.Error(1)
}

func (m *MockDiscordClient) CreateInteractionCallback(
	ctx context.Context,
	interactionID, token string,
	callbackType int,
	data *models.MessagePayloadOut,
) error {
	args := m.Called(ctx, interactionID, token, callbackType, data)
	return args.Error(0)
}

func (m *MockDiscordClient) CreateFollowupMessage(
	ctx context.Context,
	token string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredMessage), args.Error(1)
}

func (m *MockDiscordClient) GetOriginalResponse(ctx context.Context, token string) (*models.DeliveredMessage, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredMessage), args.Error(1)
}

func (m *MockDiscordClient) EditOriginalResponse(
	ctx context.Context,
	token string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	args := m.Called(ctx, token, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredMessage), args.Error(1)
}

func (m *MockDiscordClient) DeleteOriginalResponse(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockDiscordClient) GetFollowupMessage(ctx context.Context, token, messageID string) (*models.DeliveredMessage, error) {
	args := m.Called(ctx, token, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredMessage), args.Error(1)
}

func (m *MockDiscordClient) EditFollowupMessage(
	ctx context.Context,
	token, messageID string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	args := m.Called(ctx, token, messageID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeliveredMessage), args.Error(1)
}

func (m *MockDiscordClient) DeleteFollowupMessage(ctx context.Context, token, messageID string) error {
	args := m.Called(ctx, token, messageID)
	return args.Error(0)
}

func (m *MockDiscordClient) GetGuildByID(ctx context.Context, guildID string) (*clients.DiscordGuild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordGuild), args.Error(1)
}
