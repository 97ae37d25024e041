package gateway

import (
	"context"
	"fmt"
	"log"

	"aurabot/embeds"
	"aurabot/models"
)

// AdvancePagination handles a previous/next button click: it moves the
// stored page cursor one step, clamped to the valid range, edits the
// response message in place, and persists the new cursor. A click at a
// boundary leaves the cursor alone but still re-renders the page so the
// control at that edge comes back disabled. Pagination has no terminal
// state; controls stay live for as long as the interaction token allows
// edits.
func (u *GatewayUsecase) AdvancePagination(ctx context.Context, payload *models.InteractionPayload) error {
	if payload.Data == nil {
		return nil
	}

	var step int
	switch payload.Data.CustomID {
	case "previous":
		step = -1
	case "next":
		step = 1
	default:
		log.Printf("📋 Ignoring unknown component: %s", payload.Data.CustomID)
		return nil
	}

	if payload.Message == nil || payload.Message.Interaction == nil {
		return fmt.Errorf("component interaction has no source interaction reference")
	}
	originalID := payload.Message.Interaction.ID

	maybeResponse, err := u.interactionsService.GetLatestResponse(ctx, originalID)
	if err != nil {
		return fmt.Errorf("failed to load interaction response: %w", err)
	}
	if !maybeResponse.IsPresent() {
		log.Printf("⚠️ No stored response for interaction %s, ignoring pagination click", originalID)
		return nil
	}
	response := maybeResponse.MustGet()

	newPage := response.CurrentPage + step
	if newPage < 0 {
		newPage = 0
	}
	if newPage > response.TotalPages-1 {
		newPage = response.TotalPages - 1
	}
	out := models.MessagePayloadOut{
		Components: []models.ActionRow{embeds.PaginationControls(newPage, response.TotalPages)},
	}
	if response.Embeds != nil {
		pages, err := response.EmbedPages()
		if err != nil {
			return fmt.Errorf("failed to decode stored embed pages: %w", err)
		}
		out.Embeds = []models.Embed{pages[newPage]}
	} else {
		pages, err := response.ContentPages()
		if err != nil {
			return fmt.Errorf("failed to decode stored content pages: %w", err)
		}
		out.Content = pages[newPage]
	}

	if _, err := u.discordClient.EditOriginalResponse(ctx, payload.Token, out); err != nil {
		return fmt.Errorf("failed to edit paginated response: %w", err)
	}

	if newPage == response.CurrentPage {
		log.Printf("📋 Pagination click at the boundary for interaction %s, cursor stays at page %d/%d", originalID, newPage+1, response.TotalPages)
		return nil
	}

	if err := u.interactionsService.SetCurrentPage(ctx, response.ID, newPage); err != nil {
		return fmt.Errorf("failed to persist page cursor: %w", err)
	}

	log.Printf("✅ Advanced pagination for interaction %s to page %d/%d", originalID, newPage+1, response.TotalPages)
	return nil
}
