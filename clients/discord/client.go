package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"aurabot/clients"
	"aurabot/core"
	"aurabot/models"
)

var discordAPIBase = "https://discord.com/api/v10"

// DiscordClient implements the clients.DiscordClient interface over the
// Discord v10 REST API.
type DiscordClient struct {
	httpClient *http.Client
	// botToken authorizes channel-message and guild calls
	botToken string
	// applicationID parameterizes the interaction webhook URL templates
	applicationID string
	apiBase       string
}

// NewDiscordClient creates a new Discord REST client
func NewDiscordClient(httpClient *http.Client, botToken, applicationID string) clients.DiscordClient {
	return &DiscordClient{
		httpClient:    httpClient,
		botToken:      botToken,
		applicationID: applicationID,
		apiBase:       discordAPIBase,
	}
}

// NewDiscordClientWithBase creates a client against a custom API base URL.
// Used by tests to point the client at a local server.
func NewDiscordClientWithBase(httpClient *http.Client, botToken, applicationID, apiBase string) clients.DiscordClient {
	return &DiscordClient{
		httpClient:    httpClient,
		botToken:      botToken,
		applicationID: applicationID,
		apiBase:       apiBase,
	}
}

// PostChannelMessage sends a message to a guild channel
func (c *DiscordClient) PostChannelMessage(
	ctx context.Context,
	channelID string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	url := fmt.Sprintf("%s/channels/%s/messages", c.apiBase, channelID)
	return c.doMessageRequest(ctx, http.MethodPost, url, &payload, true)
}

// CreateInteractionCallback answers an interaction with the given callback
// type. Interaction callbacks authenticate by token, not by bot token.
func (c *DiscordClient) CreateInteractionCallback(
	ctx context.Context,
	interactionID, token string,
	callbackType int,
	data *models.MessagePayloadOut,
) error {
	url := fmt.Sprintf("%s/interactions/%s/%s/callback", c.apiBase, interactionID, token)

	body := map[string]any{"type": callbackType}
	if data != nil {
		body["data"] = data
	}

	_, err := c.doRequest(ctx, http.MethodPost, url, body, false)
	return err
}

// CreateFollowupMessage posts a follow-up message on the interaction webhook
func (c *DiscordClient) CreateFollowupMessage(
	ctx context.Context,
	token string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	url := fmt.Sprintf("%s/webhooks/%s/%s", c.apiBase, c.applicationID, token)
	return c.doMessageRequest(ctx, http.MethodPost, url, &payload, false)
}

// GetOriginalResponse fetches the original interaction response
func (c *DiscordClient) GetOriginalResponse(ctx context.Context, token string) (*models.DeliveredMessage, error) {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/@original", c.apiBase, c.applicationID, token)
	return c.doMessageRequest(ctx, http.MethodGet, url, nil, false)
}

// EditOriginalResponse edits the original interaction response in place
func (c *DiscordClient) EditOriginalResponse(
	ctx context.Context,
	token string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/@original", c.apiBase, c.applicationID, token)
	return c.doMessageRequest(ctx, http.MethodPatch, url, &payload, false)
}

// DeleteOriginalResponse deletes the original interaction response
func (c *DiscordClient) DeleteOriginalResponse(ctx context.Context, token string) error {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/@original", c.apiBase, c.applicationID, token)
	_, err := c.doRequest(ctx, http.MethodDelete, url, nil, false)
	return err
}

// GetFollowupMessage fetches a follow-up message by ID
func (c *DiscordClient) GetFollowupMessage(ctx context.Context, token, messageID string) (*models.DeliveredMessage, error) {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/%s", c.apiBase, c.applicationID, token, messageID)
	return c.doMessageRequest(ctx, http.MethodGet, url, nil, false)
}

// EditFollowupMessage edits a follow-up message by ID
func (c *DiscordClient) EditFollowupMessage(
	ctx context.Context,
	token, messageID string,
	payload models.MessagePayloadOut,
) (*models.DeliveredMessage, error) {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/%s", c.apiBase, c.applicationID, token, messageID)
	return c.doMessageRequest(ctx, http.MethodPatch, url, &payload, false)
}

// DeleteFollowupMessage deletes a follow-up message by ID
func (c *DiscordClient) DeleteFollowupMessage(ctx context.Context, token, messageID string) error {
	url := fmt.Sprintf("%s/webhooks/%s/%s/messages/%s", c.apiBase, c.applicationID, token, messageID)
	_, err := c.doRequest(ctx, http.MethodDelete, url, nil, false)
	return err
}

// GetGuildByID fetches guild information using the bot token
func (c *DiscordClient) GetGuildByID(ctx context.Context, guildID string) (*clients.DiscordGuild, error) {
	url := fmt.Sprintf("%s/guilds/%s", c.apiBase, guildID)
	body, err := c.doRequest(ctx, http.MethodGet, url, nil, true)
	if err != nil {
		return nil, err
	}

	var guild clients.DiscordGuild
	if err := json.Unmarshal(body, &guild); err != nil {
		return nil, fmt.Errorf("failed to decode guild response: %w", err)
	}
	if guild.ID == "" {
		return nil, core.ErrNotFound
	}
	return &guild, nil
}

func (c *DiscordClient) doMessageRequest(
	ctx context.Context,
	method, url string,
	payload *models.MessagePayloadOut,
	authorized bool,
) (*models.DeliveredMessage, error) {
	var body any
	if payload != nil {
		body = payload
	}

	respBody, err := c.doRequest(ctx, method, url, body, authorized)
	if err != nil {
		return nil, err
	}
	if len(respBody) == 0 {
		return nil, nil
	}

	var message models.DeliveredMessage
	if err := json.Unmarshal(respBody, &message); err != nil {
		return nil, fmt.Errorf("failed to decode message response: %w", err)
	}
	return &message, nil
}

func (c *DiscordClient) doRequest(
	ctx context.Context,
	method, url string,
	body any,
	authorized bool,
) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bot "+c.botToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.DeliveryError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
