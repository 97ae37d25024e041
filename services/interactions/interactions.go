package interactions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/samber/mo"

	"aurabot/core"
	"aurabot/db"
	"aurabot/models"
)

type InteractionsService struct {
	interactionsRepo *db.PostgresInteractionsRepository
	responsesRepo    *db.PostgresInteractionResponsesRepository
}

func NewInteractionsService(
	interactionsRepo *db.PostgresInteractionsRepository,
	responsesRepo *db.PostgresInteractionResponsesRepository,
) *InteractionsService {
	return &InteractionsService{
		interactionsRepo: interactionsRepo,
		responsesRepo:    responsesRepo,
	}
}

// SaveInteraction stores an inbound interaction keyed by its Discord ID.
// Redeliveries of the same interaction are a no-op.
func (s *InteractionsService) SaveInteraction(
	ctx context.Context,
	discordID, token string,
	rawData []byte,
) (*models.Interaction, error) {
	log.Printf("📋 Starting to save interaction: %s", discordID)

	if discordID == "" {
		return nil, fmt.Errorf("discord_id cannot be empty")
	}
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	interaction := &models.Interaction{
		DiscordID: discordID,
		Token:     token,
		Data:      string(rawData),
	}
	if err := s.interactionsRepo.CreateInteraction(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to save interaction: %w", err)
	}

	log.Printf("📋 Completed successfully - saved interaction: %s", discordID)
	return interaction, nil
}

// GetInteractionByDiscordID fetches a stored interaction by Discord ID
func (s *InteractionsService) GetInteractionByDiscordID(
	ctx context.Context,
	discordID string,
) (mo.Option[*models.Interaction], error) {
	if discordID == "" {
		return mo.None[*models.Interaction](), fmt.Errorf("discord_id cannot be empty")
	}
	return s.interactionsRepo.GetInteractionByDiscordID(ctx, discordID)
}

// SaveResponse persists a delivered response with its page set so pagination
// controls can replay any page later. Exactly one of embedPages or
// contentPages should be non-empty.
func (s *InteractionsService) SaveResponse(
	ctx context.Context,
	interactionID, wireData string,
	embedPages []models.Embed,
	contentPages []string,
) (*models.InteractionResponse, error) {
	log.Printf("📋 Starting to save interaction response for: %s", interactionID)

	if interactionID == "" {
		return nil, fmt.Errorf("interaction_id cannot be empty")
	}
	if len(embedPages) > 0 && len(contentPages) > 0 {
		return nil, fmt.Errorf("response cannot have both embed and content pages")
	}

	totalPages := len(embedPages)
	if totalPages == 0 {
		totalPages = len(contentPages)
	}
	if totalPages == 0 {
		return nil, fmt.Errorf("response must have at least one page")
	}

	response := &models.InteractionResponse{
		ID:            core.NewID("ir"),
		InteractionID: interactionID,
		Data:          wireData,
		TotalPages:    totalPages,
		CurrentPage:   0,
	}

	if len(embedPages) > 0 {
		encoded, err := json.Marshal(embedPages)
		if err != nil {
			return nil, fmt.Errorf("failed to encode embed pages: %w", err)
		}
		embeds := string(encoded)
		response.Embeds = &embeds
	} else {
		encoded, err := json.Marshal(contentPages)
		if err != nil {
			return nil, fmt.Errorf("failed to encode content pages: %w", err)
		}
		content := string(encoded)
		response.Content = &content
	}

	if err := s.responsesRepo.CreateInteractionResponse(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save interaction response: %w", err)
	}

	log.Printf("📋 Completed successfully - saved interaction response: %s (%d pages)", response.ID, totalPages)
	return response, nil
}

// GetLatestResponse fetches the most recent stored response for an interaction
func (s *InteractionsService) GetLatestResponse(
	ctx context.Context,
	interactionID string,
) (mo.Option[*models.InteractionResponse], error) {
	if interactionID == "" {
		return mo.None[*models.InteractionResponse](), fmt.Errorf("interaction_id cannot be empty")
	}
	return s.responsesRepo.GetLatestByInteractionID(ctx, interactionID)
}

// SetCurrentPage moves the stored pagination cursor
func (s *InteractionsService) SetCurrentPage(ctx context.Context, responseID string, currentPage int) error {
	log.Printf("📋 Starting to set current page for response %s: %d", responseID, currentPage)

	if responseID == "" {
		return fmt.Errorf("response_id cannot be empty")
	}
	if currentPage < 0 {
		return fmt.Errorf("current_page cannot be negative")
	}

	if err := s.responsesRepo.UpdateCurrentPage(ctx, responseID, currentPage); err != nil {
		return fmt.Errorf("failed to set current page: %w", err)
	}

	log.Printf("📋 Completed successfully - set current page for response %s", responseID)
	return nil
}
