package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"aurabot/config"
	"aurabot/db"
	"aurabot/models"
)

// LoadTestConfig loads configuration for tests from environment variables
func LoadTestConfig() (*config.AppConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test") // From package directories
	_ = godotenv.Load(".env.test")    // From root directory
	_ = godotenv.Load()               // Default .env file

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		return nil, fmt.Errorf("DB_SCHEMA is not set")
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
		BotUserID:      "111111111111111111",
		BotVersion:     "test",
	}, nil
}

// CreateTestGuild creates a guild row with a unique ID to avoid constraint
// violations between test runs
func CreateTestGuild(t *testing.T, guildsRepo *db.PostgresGuildsRepository) *models.Guild {
	guildID := fmt.Sprintf("test-guild-%s", uuid.New().String())
	channelID := fmt.Sprintf("test-channel-%s", uuid.New().String())
	guild := &models.Guild{
		GuildID:         guildID,
		Name:            "Test Guild",
		OwnerID:         fmt.Sprintf("test-owner-%s", uuid.New().String()),
		SystemChannelID: &channelID,
	}

	err := guildsRepo.UpsertGuild(context.Background(), guild)
	require.NoError(t, err, "Failed to create test guild")
	return guild
}

// CreateTestInteraction creates an interaction row with a unique Discord ID
func CreateTestInteraction(t *testing.T, interactionsRepo *db.PostgresInteractionsRepository) *models.Interaction {
	interaction := &models.Interaction{
		DiscordID: fmt.Sprintf("test-interaction-%s", uuid.New().String()),
		Token:     fmt.Sprintf("test-token-%s", uuid.New().String()),
		Data:      `{"name":"help"}`,
		CreatedAt: time.Now(),
	}

	err := interactionsRepo.CreateInteraction(context.Background(), interaction)
	require.NoError(t, err, "Failed to create test interaction")
	return interaction
}
