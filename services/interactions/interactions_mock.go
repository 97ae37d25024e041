package interactions

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"aurabot/models"
)

type MockInteractionsService struct {
	mock.Mock
}

func (m *MockInteractionsService) SaveInteraction(
	ctx context.Context,
	discordID, token string,
	rawData []byte,
) (*models.Interaction, error) {
	args := m.Called(ctx, discordID, token, rawData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interaction), args.Error(1)
}

func (m *MockInteractionsService) GetInteractionByDiscordID(
	ctx context.Context,
	discordID string,
) (mo.Option[*models.Interaction], error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(mo.Option[*models.Interaction]), args.Error(1)
}

func (m *MockInteractionsService) SaveResponse(
	ctx context.Context,
	interactionID, wireData string,
	embedPages []models.Embed,
	contentPages []string,
) (*models.InteractionResponse, error) {
	args := m.Called(ctx, interactionID, wireData, embedPages, contentPages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InteractionResponse), args.Error(1)
}

func (m *MockInteractionsService) GetLatestResponse(
	ctx context.Context,
	interactionID string,
) (mo.Option[*models.InteractionResponse], error) {
	args := m.Called(ctx, interactionID)
	return args.Get(0).(mo.Option[*models.InteractionResponse]), args.Error(1)
}

func (m *MockInteractionsService) SetCurrentPage(ctx context.Context, responseID string, currentPage int) error {
	args := m.Called(ctx, responseID, currentPage)
	return args.Error(0)
}
