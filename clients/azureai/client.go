package azureai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aurabot/clients"
	"aurabot/core"
	"aurabot/utils"
)

// ChatClient implements the clients.ChatClient interface against an Azure
// OpenAI chat-completions deployment.
type ChatClient struct {
	httpClient        *http.Client
	endpoint          string
	apiKey            string
	model             string
	systemInstruction string
}

// NewChatClient creates a new Azure chat client
func NewChatClient(endpoint, apiKey, model, systemInstruction string) clients.ChatClient {
	return &ChatClient{
		httpClient:        &http.Client{Timeout: 30 * time.Second},
		endpoint:          endpoint,
		apiKey:            apiKey,
		model:             model,
		systemInstruction: systemInstruction,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
	Model    string        `json:"model"`
}

type chatCompletion struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// modelReply is the structured shape the system instruction asks the model
// to answer with. Color may arrive as a hex string or a number.
type modelReply struct {
	Content string          `json:"content"`
	Color   json.RawMessage `json:"color"`
}

// GenerateResponse sends the conversation text with the fixed system
// instruction. A content-filter rejection is retried once with a sanitized
// prompt; a rate-limit rejection surfaces as core.ErrRateLimited.
func (c *ChatClient) GenerateResponse(ctx context.Context, text string) (*clients.ChatResponse, error) {
	response, err := c.complete(ctx, text)
	if errors.Is(err, core.ErrContentFiltered) {
		sanitized := utils.SanitizePrompt(text)
		if sanitized == "" || sanitized == text {
			return nil, core.ErrContentFiltered
		}
		log.Printf("⚠️ Prompt rejected by content filter, retrying sanitized")
		return c.complete(ctx, sanitized)
	}
	return response, err
}

func (c *ChatClient) complete(ctx context.Context, text string) (*clients.ChatResponse, error) {
	reqBody := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: c.systemInstruction},
			{Role: "user", Content: text},
		},
		Model: c.model,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute chat request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, core.ErrRateLimited
	}
	if resp.StatusCode == http.StatusBadRequest && strings.Contains(string(respBody), "content_filter") {
		return nil, core.ErrContentFiltered
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var completion chatCompletion
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	if completion.Choices[0].FinishReason == "content_filter" {
		return nil, core.ErrContentFiltered
	}

	content, color := parseModelReply(completion.Choices[0].Message.Content)

	// Some deployments omit the usage block; estimate so cost accounting
	// never records zero for a non-empty exchange.
	inputTokens := completion.Usage.PromptTokens
	outputTokens := completion.Usage.CompletionTokens
	if inputTokens == 0 {
		inputTokens = core.EstimateTokensWithSystem(c.systemInstruction, text)
	}
	if outputTokens == 0 {
		outputTokens = core.EstimateTokens(content)
	}

	return &clients.ChatResponse{
		Content:      content,
		Color:        color,
		Provider:     "azure",
		Model:        c.model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}, nil
}

// parseModelReply extracts content and accent color from the model output.
// Models that ignore the structured-reply instruction get their raw text
// passed through with no color.
func parseModelReply(raw string) (string, int) {
	var reply modelReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil || reply.Content == "" {
		return raw, 0
	}
	return reply.Content, NormalizeColor(reply.Color)
}

// NormalizeColor converts a color that arrived as a hex string ("0x00ff00",
// "#00ff00", "00ff00") or a plain number into an int. Unparseable values
// normalize to 0.
func NormalizeColor(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var asNumber int
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return 0
	}

	cleaned := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(asString), "#"), "0x")
	parsed, err := strconv.ParseInt(cleaned, 16, 64)
	if err != nil {
		return 0
	}
	return int(parsed)
}
