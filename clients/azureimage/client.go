package azureimage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aurabot/clients"
	"aurabot/core"
)

// MaxImagesPerRequest is the upper bound on images per generation call.
const MaxImagesPerRequest = 10

// ImageClient implements the clients.ImageClient interface against an Azure
// OpenAI image-generation deployment.
type ImageClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	size       string
}

// NewImageClient creates a new image generation client
func NewImageClient(endpoint, apiKey string) clients.ImageClient {
	return &ImageClient{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		size:       "1024x1024",
	}
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// GenerateImages generates count images for the prompt and returns their URLs
func (c *ImageClient) GenerateImages(ctx context.Context, prompt string, count int) ([]string, error) {
	if count < 1 || count > MaxImagesPerRequest {
		return nil, fmt.Errorf("image count must be between 1 and %d, got %d", MaxImagesPerRequest, count)
	}

	reqBody := imageRequest{Prompt: prompt, Size: c.size, N: count}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute image request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, core.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image generation failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed imageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode image response: %w", err)
	}

	urls := make([]string, 0, len(parsed.Data))
	for _, image := range parsed.Data {
		urls = append(urls, image.URL)
	}
	return urls, nil
}
