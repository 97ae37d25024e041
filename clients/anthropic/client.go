package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"aurabot/clients"
	"aurabot/core"
)

// ChatClient implements the clients.ChatClient interface on top of the
// Anthropic Messages API. Selected with AI_PROVIDER=anthropic.
type ChatClient struct {
	sdkClient         anthropic.Client
	model             string
	systemInstruction string
}

// NewChatClient creates a new Anthropic chat client
func NewChatClient(apiKey, model, systemInstruction string) clients.ChatClient {
	return &ChatClient{
		sdkClient:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:             model,
		systemInstruction: systemInstruction,
	}
}

// GenerateResponse sends the conversation text with the fixed system
// instruction. Rate limits surface as core.ErrRateLimited so callers can
// show a distinct notice.
func (c *ChatClient) GenerateResponse(ctx context.Context, text string) (*clients.ChatResponse, error) {
	message, err := c.sdkClient.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: c.systemInstruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return nil, core.ErrRateLimited
		}
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	var content strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 {
		return nil, fmt.Errorf("message response contained no text content")
	}

	return &clients.ChatResponse{
		Content:      content.String(),
		Provider:     "anthropic",
		Model:        c.model,
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}
