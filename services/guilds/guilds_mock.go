package guilds

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"aurabot/models"
)

type MockGuildsService struct {
	mock.Mock
}

func (m *MockGuildsService) UpsertGuild(ctx context.Context, payload *models.GuildPayload) (*models.Guild, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildsService) GetGuildByID(ctx context.Context, guildID string) (mo.Option[*models.Guild], error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(mo.Option[*models.Guild]), args.Error(1)
}

func (m *MockGuildsService) MarkInitialized(ctx context.Context, guildID string, initialized time.Time, botVersion string) error {
	args := m.Called(ctx, guildID, initialized, botVersion)
	return args.Error(0)
}

func (m *MockGuildsService) Deinitialize(ctx context.Context, guildID string) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

func (m *MockGuildsService) ConfigureAuraChannel(ctx context.Context, guildID, channelID string) error {
	args := m.Called(ctx, guildID, channelID)
	return args.Error(0)
}

func (m *MockGuildsService) ListInitializedGuilds(ctx context.Context) ([]*models.Guild, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guild), args.Error(1)
}
