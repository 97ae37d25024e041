package azuretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"aurabot/clients"
	"aurabot/core"
)

var defaultAPIBase = "https://api.cognitive.microsofttranslator.com"

// DefaultTargetLanguages is used when the caller does not name target
// languages.
var DefaultTargetLanguages = []string{"fr", "es", "zh-Hant", "ja", "ko"}

// TranslateClient implements the clients.TranslateClient interface against
// the Azure Translator API.
type TranslateClient struct {
	httpClient *http.Client
	apiKey     string
	region     string
	apiBase    string

	// language names rarely change, cache them for the process lifetime
	languagesOnce sync.Once
	languages     map[string]string
	languagesErr  error
}

// NewTranslateClient creates a new translation client
func NewTranslateClient(apiKey, region string) clients.TranslateClient {
	return &TranslateClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		region:     region,
		apiBase:    defaultAPIBase,
	}
}

// NewTranslateClientWithBase creates a client against a custom API base URL.
// Used by tests to point the client at a local server.
func NewTranslateClientWithBase(apiKey, region, apiBase string) clients.TranslateClient {
	return &TranslateClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		region:     region,
		apiBase:    apiBase,
	}
}

type translateResult struct {
	Translations []clients.Translation `json:"translations"`
}

// Translate translates text into the target languages. An empty target list
// falls back to the service defaults.
func (c *TranslateClient) Translate(
	ctx context.Context,
	text string,
	targetLangs []string,
) ([]clients.Translation, error) {
	if len(targetLangs) == 0 {
		targetLangs = DefaultTargetLanguages
	}

	var toParams strings.Builder
	for _, lang := range targetLangs {
		toParams.WriteString("&to=")
		toParams.WriteString(lang)
	}
	url := fmt.Sprintf("%s/translate?api-version=3.0%s&profanityAction=Marked", c.apiBase, toParams.String())

	jsonBody, err := json.Marshal([]map[string]string{{"text": text}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal translate request: %w", err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, url, jsonBody)
	if err != nil {
		return nil, err
	}

	var results []translateResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return nil, fmt.Errorf("failed to decode translate response: %w", err)
	}

	var translations []clients.Translation
	for _, result := range results {
		translations = append(translations, result.Translations...)
	}
	return translations, nil
}

type languagesResponse struct {
	Translation map[string]struct {
		Name       string `json:"name"`
		NativeName string `json:"nativeName"`
	} `json:"translation"`
}

// LanguageNames returns the language-code to native-name lookup table,
// cached for the process lifetime.
func (c *TranslateClient) LanguageNames(ctx context.Context) (map[string]string, error) {
	c.languagesOnce.Do(func() {
		url := fmt.Sprintf("%s/languages?api-version=3.0&scope=translation", c.apiBase)
		respBody, err := c.doRequest(ctx, http.MethodGet, url, nil)
		if err != nil {
			c.languagesErr = err
			return
		}

		var parsed languagesResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			c.languagesErr = fmt.Errorf("failed to decode languages response: %w", err)
			return
		}

		names := make(map[string]string, len(parsed.Translation))
		for code, lang := range parsed.Translation {
			names[code] = lang.NativeName
		}
		c.languages = names
	})
	return c.languages, c.languagesErr
}

func (c *TranslateClient) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	req.Header.Set("Ocp-Apim-Subscription-Region", c.region)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute translate request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read translate response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, core.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translation failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
