package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"aurabot/models"
)

type MockGatewayProcessor struct {
	mock.Mock
}

func (m *MockGatewayProcessor) ProcessGuildCreate(ctx context.Context, event *models.InboundEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockGatewayProcessor) ProcessGuildDelete(ctx context.Context, event *models.InboundEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockGatewayProcessor) ProcessMessageCreate(ctx context.Context, event *models.InboundEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockGatewayProcessor) ProcessInteraction(ctx context.Context, event *models.InboundEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockGatewayProcessor) CallbackType(interactionType int) int {
	args := m.Called(interactionType)
	return args.Int(0)
}

func (m *MockGatewayProcessor) Heartbeat(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
