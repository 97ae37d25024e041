package usage

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"aurabot/clients"
)

type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) RecordChatUsage(ctx context.Context, guildID string, response *clients.ChatResponse) error {
	args := m.Called(ctx, guildID, response)
	return args.Error(0)
}

func (m *MockUsageService) TotalCostForGuild(ctx context.Context, guildID string) (decimal.Decimal, error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
