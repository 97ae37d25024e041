package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken      string
	ApplicationID string
	PublicKey     string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.ApplicationID != "" &&
		c.PublicKey != ""
}

type AzureAIConfig struct {
	Endpoint          string
	APIKey            string
	Model             string
	SystemInstruction string // decoded from base64
}

// IsConfigured returns true if all required Azure AI configuration is present
func (c AzureAIConfig) IsConfigured() bool {
	return c.Endpoint != "" &&
		c.APIKey != "" &&
		c.Model != ""
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// IsConfigured returns true if all required Anthropic configuration is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != "" &&
		c.Model != ""
}

type AzureImageConfig struct {
	Endpoint string
	APIKey   string
}

// IsConfigured returns true if all required image service configuration is present
func (c AzureImageConfig) IsConfigured() bool {
	return c.Endpoint != "" &&
		c.APIKey != ""
}

type AzureTranslateConfig struct {
	Endpoint string // optional override of the service base URL
	APIKey   string
	Region   string
}

// IsConfigured returns true if all required translation configuration is present
func (c AzureTranslateConfig) IsConfigured() bool {
	return c.APIKey != "" &&
		c.Region != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	ServerLogsURL      string
	BotUserID          string
	BotVersion         string
	AIProvider         string // "azure" or "anthropic"
	SlackAlertWebhook  string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	DiscordConfig        DiscordConfig
	AzureAIConfig        AzureAIConfig
	AnthropicConfig      AnthropicConfig
	AzureImageConfig     AzureImageConfig
	AzureTranslateConfig AzureTranslateConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	botUserID, err := getEnvRequired("DISCORD_BOT_USER_ID")
	if err != nil {
		return nil, err
	}

	systemInstruction, err := decodeBase64Env("AI_SYSTEM_INSTRUCTION_B64")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),
		BotUserID:          botUserID,
		BotVersion:         getEnvWithDefault("BOT_VERSION", "dev"),
		AIProvider:         getEnvWithDefault("AI_PROVIDER", "azure"),
		SlackAlertWebhook:  os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		// Discord configuration (required for all gateway traffic)
		DiscordConfig: DiscordConfig{
			BotToken:      os.Getenv("DISCORD_BOT_TOKEN"),
			ApplicationID: os.Getenv("DISCORD_APPLICATION_ID"),
			PublicKey:     os.Getenv("DISCORD_PUBLIC_KEY"),
		},

		// Azure AI configuration (optional when Anthropic is selected)
		AzureAIConfig: AzureAIConfig{
			Endpoint:          os.Getenv("AZURE_AI_ENDPOINT"),
			APIKey:            os.Getenv("AZURE_AI_API_KEY"),
			Model:             os.Getenv("AZURE_AI_MODEL"),
			SystemInstruction: systemInstruction,
		},

		// Anthropic configuration (optional when Azure is selected)
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  os.Getenv("ANTHROPIC_MODEL"),
		},

		// Image generation configuration (optional)
		AzureImageConfig: AzureImageConfig{
			Endpoint: os.Getenv("AZURE_IMAGE_ENDPOINT"),
			APIKey:   os.Getenv("AZURE_IMAGE_API_KEY"),
		},

		// Translation configuration (optional)
		AzureTranslateConfig: AzureTranslateConfig{
			Endpoint: os.Getenv("AZURE_TRANSLATE_ENDPOINT"),
			APIKey:   os.Getenv("AZURE_TRANSLATE_API_KEY"),
			Region:   os.Getenv("AZURE_TRANSLATE_REGION"),
		},
	}

	if config.AIProvider != "azure" && config.AIProvider != "anthropic" {
		return nil, fmt.Errorf("AI_PROVIDER must be 'azure' or 'anthropic', got %q", config.AIProvider)
	}

	// Log which integrations are configured
	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord integration configured")
	} else {
		log.Printf("⚠️ Discord integration not configured - gateway cannot serve traffic")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("discord integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	switch config.AIProvider {
	case "azure":
		if config.AzureAIConfig.IsConfigured() {
			log.Printf("✅ Azure AI chat configured")
		} else {
			log.Printf("⚠️ Azure AI chat not configured - conversation features will be disabled")
			if config.UseStrictConfig {
				return nil, fmt.Errorf("azure AI is not fully configured (USE_STRICT_CONFIG=true)")
			}
		}
	case "anthropic":
		if config.AnthropicConfig.IsConfigured() {
			log.Printf("✅ Anthropic chat configured")
		} else {
			log.Printf("⚠️ Anthropic chat not configured - conversation features will be disabled")
			if config.UseStrictConfig {
				return nil, fmt.Errorf("anthropic is not fully configured (USE_STRICT_CONFIG=true)")
			}
		}
	}

	if config.AzureImageConfig.IsConfigured() {
		log.Printf("✅ Image generation configured")
	} else {
		log.Printf("⚠️ Image generation not configured - image features will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("image generation is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.AzureTranslateConfig.IsConfigured() {
		log.Printf("✅ Translation configured")
	} else {
		log.Printf("⚠️ Translation not configured - translate features will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("translation is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// decodeBase64Env decodes an optional base64-encoded env var.
func decodeBase64Env(key string) (string, error) {
	encoded := os.Getenv(key)
	if encoded == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return string(decoded), nil
}
