package clients

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChatClient is a mock implementation of the ChatClient interface
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) GenerateResponse(ctx context.Context, text string) (*ChatResponse, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChatResponse), args.Error(1)
}

// MockImageClient is a mock implementation of the ImageClient interface
type MockImageClient struct {
	mock.Mock
}

func (m *MockImageClient) GenerateImages(ctx context.Context, prompt string, count int) ([]string, error) {
	args := m.Called(ctx, prompt, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTranslateClient is a mock implementation of the TranslateClient interface
type MockTranslateClient struct {
	mock.Mock
}

func (m *MockTranslateClient) Translate(
	ctx context.Context,
	text string,
	targetLangs []string,
) ([]Translation, error) {
	args := m.Called(ctx, text, targetLangs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Translation), args.Error(1)
}

func (m *MockTranslateClient) LanguageNames(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
