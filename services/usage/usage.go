package usage

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"aurabot/clients"
	"aurabot/core"
	"aurabot/db"
	"aurabot/models"
)

// Per-million-token rates keyed by model. Models not listed here are
// recorded with zero cost rather than rejected.
var modelRates = map[string]struct {
	input  decimal.Decimal
	output decimal.Decimal
}{
	"gpt-4o":                  {input: decimal.NewFromFloat(2.50), output: decimal.NewFromFloat(10.00)},
	"gpt-4o-mini":             {input: decimal.NewFromFloat(0.15), output: decimal.NewFromFloat(0.60)},
	"claude-sonnet-4-0":       {input: decimal.NewFromFloat(3.00), output: decimal.NewFromFloat(15.00)},
	"claude-3-5-haiku-latest": {input: decimal.NewFromFloat(0.80), output: decimal.NewFromFloat(4.00)},
}

var tokensPerMillion = decimal.NewFromInt(1_000_000)

type UsageService struct {
	usageRepo *db.PostgresAIUsageRepository
}

func NewUsageService(usageRepo *db.PostgresAIUsageRepository) *UsageService {
	return &UsageService{usageRepo: usageRepo}
}

// RecordChatUsage stores token counts and computed cost for one completion
func (s *UsageService) RecordChatUsage(ctx context.Context, guildID string, response *clients.ChatResponse) error {
	log.Printf("📋 Starting to record chat usage for guild %s (%s/%s)", guildID, response.Provider, response.Model)

	if response.Provider == "" {
		return fmt.Errorf("provider cannot be empty")
	}
	if response.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	record := &models.AIUsage{
		ID:           core.NewID("au"),
		Provider:     response.Provider,
		Model:        response.Model,
		InputTokens:  response.InputTokens,
		OutputTokens: response.OutputTokens,
		Cost:         CostFor(response.Model, response.InputTokens, response.OutputTokens),
	}
	if guildID != "" {
		record.GuildID = &guildID
	}

	if err := s.usageRepo.CreateAIUsage(ctx, record); err != nil {
		return fmt.Errorf("failed to record chat usage: %w", err)
	}

	log.Printf("📋 Completed successfully - recorded chat usage: %s (cost %s)", record.ID, record.Cost.StringFixed(6))
	return nil
}

// TotalCostForGuild sums the recorded spend for one guild
func (s *UsageService) TotalCostForGuild(ctx context.Context, guildID string) (decimal.Decimal, error) {
	if guildID == "" {
		return decimal.Zero, fmt.Errorf("guild_id cannot be empty")
	}
	return s.usageRepo.SumCostByGuild(ctx, guildID)
}

// CostFor prices a completion against the known model rates
func CostFor(model string, inputTokens, outputTokens int) decimal.Decimal {
	rates, ok := modelRates[model]
	if !ok {
		return decimal.Zero
	}
	inputCost := decimal.NewFromInt(int64(inputTokens)).Mul(rates.input).Div(tokensPerMillion)
	outputCost := decimal.NewFromInt(int64(outputTokens)).Mul(rates.output).Div(tokensPerMillion)
	return inputCost.Add(outputCost)
}
