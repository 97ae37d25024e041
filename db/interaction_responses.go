package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	"aurabot/models"
)

type PostgresInteractionResponsesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for interaction_responses table
var interactionResponsesColumns = []string{
	"id",
	"interaction_id",
	"data",
	"total_pages",
	"current_page",
	"embeds",
	"content",
	"created_at",
	"updated_at",
}

func NewPostgresInteractionResponsesRepository(
	db *sqlx.DB,
	schema string,
) *PostgresInteractionResponsesRepository {
	return &PostgresInteractionResponsesRepository{db: db, schema: schema}
}

// CreateInteractionResponse stores the delivered paginated response set
func (r *PostgresInteractionResponsesRepository) CreateInteractionResponse(
	ctx context.Context,
	response *models.InteractionResponse,
) error {
	insertColumns := []string{
		"id",
		"interaction_id",
		"data",
		"total_pages",
		"current_page",
		"embeds",
		"content",
	}

	placeholders := make([]string, len(insertColumns))
	for i := range insertColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s.interaction_responses (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())`,
		r.schema,
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "))

	_, err := r.db.ExecContext(
		ctx,
		query,
		response.ID,
		response.InteractionID,
		response.Data,
		response.TotalPages,
		response.CurrentPage,
		response.Embeds,
		response.Content,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique violation
				return fmt.Errorf("interaction response already exists")
			}
		}
		return fmt.Errorf("failed to create interaction response: %w", err)
	}

	return nil
}

// GetLatestByInteractionID fetches the most recent response record for an
// interaction
func (r *PostgresInteractionResponsesRepository) GetLatestByInteractionID(
	ctx context.Context,
	interactionID string,
) (mo.Option[*models.InteractionResponse], error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s.interaction_responses
		WHERE interaction_id = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		strings.Join(interactionResponsesColumns, ", "), r.schema)

	var response models.InteractionResponse
	err := r.db.GetContext(ctx, &response, query, interactionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.InteractionResponse](), nil
		}
		return mo.None[*models.InteractionResponse](), fmt.Errorf("failed to get interaction response: %w", err)
	}

	return mo.Some(&response), nil
}

// UpdateCurrentPage advances the pagination cursor. Last writer wins across
// concurrent redeliveries.
func (r *PostgresInteractionResponsesRepository) UpdateCurrentPage(
	ctx context.Context,
	id string,
	currentPage int,
) error {
	query := fmt.Sprintf(`
		UPDATE %s.interaction_responses SET current_page = $2, updated_at = NOW()
		WHERE id = $1`,
		r.schema)

	result, err := r.db.ExecContext(ctx, query, id, currentPage)
	if err != nil {
		return fmt.Errorf("failed to update current page: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("interaction response not found: %s", id)
	}

	return nil
}
