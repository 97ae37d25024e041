package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"aurabot/models"
)

type PostgresAIUsageRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for ai_usage table
var aiUsageColumns = []string{
	"id",
	"guild_id",
	"provider",
	"model",
	"input_tokens",
	"output_tokens",
	"cost",
	"created_at",
}

func NewPostgresAIUsageRepository(db *sqlx.DB, schema string) *PostgresAIUsageRepository {
	return &PostgresAIUsageRepository{db: db, schema: schema}
}

// CreateAIUsage records one chat-completion call
func (r *PostgresAIUsageRepository) CreateAIUsage(ctx context.Context, usage *models.AIUsage) error {
	insertColumns := []string{
		"id",
		"guild_id",
		"provider",
		"model",
		"input_tokens",
		"output_tokens",
		"cost",
	}

	placeholders := make([]string, len(insertColumns))
	for i := range insertColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s.ai_usage (%s, created_at)
		VALUES (%s, NOW())`,
		r.schema,
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "))

	_, err := r.db.ExecContext(
		ctx,
		query,
		usage.ID,
		usage.GuildID,
		usage.Provider,
		usage.Model,
		usage.InputTokens,
		usage.OutputTokens,
		usage.Cost,
	)
	if err != nil {
		return fmt.Errorf("failed to create ai usage record: %w", err)
	}

	return nil
}

// SumCostByGuild totals recorded chat-completion spend for a guild
func (r *PostgresAIUsageRepository) SumCostByGuild(ctx context.Context, guildID string) (decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(cost), 0) FROM %s.ai_usage WHERE guild_id = $1`,
		r.schema)

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, guildID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ai usage cost: %w", err)
	}

	return total, nil
}
