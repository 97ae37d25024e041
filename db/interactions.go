package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"aurabot/models"
)

type PostgresInteractionsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for interactions table
var interactionsColumns = []string{
	"discord_id",
	"token",
	"data",
	"created_at",
}

func NewPostgresInteractionsRepository(db *sqlx.DB, schema string) *PostgresInteractionsRepository {
	return &PostgresInteractionsRepository{db: db, schema: schema}
}

// CreateInteraction stores an inbound interaction. Redeliveries of the same
// interaction are tolerated: conflicts on discord_id are a no-op.
func (r *PostgresInteractionsRepository) CreateInteraction(
	ctx context.Context,
	interaction *models.Interaction,
) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.interactions (discord_id, token, data, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (discord_id) DO NOTHING`,
		r.schema)

	_, err := r.db.ExecContext(ctx, query, interaction.DiscordID, interaction.Token, interaction.Data)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

// GetInteractionByDiscordID fetches an interaction by its Discord ID
func (r *PostgresInteractionsRepository) GetInteractionByDiscordID(
	ctx context.Context,
	discordID string,
) (mo.Option[*models.Interaction], error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s.interactions WHERE discord_id = $1`,
		strings.Join(interactionsColumns, ", "), r.schema)

	var interaction models.Interaction
	err := r.db.GetContext(ctx, &interaction, query, discordID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Interaction](), nil
		}
		return mo.None[*models.Interaction](), fmt.Errorf("failed to get interaction: %w", err)
	}

	return mo.Some(&interaction), nil
}
