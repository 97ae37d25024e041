package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"aurabot/models"
)

type PostgresGuildsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for guilds table
var guildsColumns = []string{
	"guild_id",
	"name",
	"owner_id",
	"system_channel_id",
	"aura_channel_id",
	"initialized",
	"bot_version",
	"created_at",
	"updated_at",
}

func NewPostgresGuildsRepository(db *sqlx.DB, schema string) *PostgresGuildsRepository {
	return &PostgresGuildsRepository{db: db, schema: schema}
}

// UpsertGuild inserts or updates a guild's metadata. Guilds are never
// deleted; onboarding state (initialized, bot_version, aura_channel_id) is
// left untouched on update so redeliveries cannot clobber it.
func (r *PostgresGuildsRepository) UpsertGuild(ctx context.Context, guild *models.Guild) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.guilds (guild_id, name, owner_id, system_channel_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (guild_id) DO UPDATE SET
			name = EXCLUDED.name,
			owner_id = EXCLUDED.owner_id,
			system_channel_id = EXCLUDED.system_channel_id,
			updated_at = NOW()`,
		r.schema)

	_, err := r.db.ExecContext(
		ctx,
		query,
		guild.GuildID,
		guild.Name,
		guild.OwnerID,
		guild.SystemChannelID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert guild: %w", err)
	}

	return nil
}

// GetGuildByID fetches a guild by its Discord guild ID
func (r *PostgresGuildsRepository) GetGuildByID(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.Guild], error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s.guilds WHERE guild_id = $1`,
		strings.Join(guildsColumns, ", "), r.schema)

	var guild models.Guild
	err := r.db.GetContext(ctx, &guild, query, guildID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.Guild](), nil
		}
		return mo.None[*models.Guild](), fmt.Errorf("failed to get guild: %w", err)
	}

	return mo.Some(&guild), nil
}

// SetInitialized records that onboarding completed at the given time with
// the given bot version
func (r *PostgresGuildsRepository) SetInitialized(
	ctx context.Context,
	guildID string,
	initialized time.Time,
	botVersion string,
) error {
	query := fmt.Sprintf(`
		UPDATE %s.guilds SET initialized = $2, bot_version = $3, updated_at = NOW()
		WHERE guild_id = $1`,
		r.schema)

	result, err := r.db.ExecContext(ctx, query, guildID, initialized, botVersion)
	if err != nil {
		return fmt.Errorf("failed to set guild initialized: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("guild not found: %s", guildID)
	}

	return nil
}

// ClearInitialized re-arms onboarding after the guild removed the bot
func (r *PostgresGuildsRepository) ClearInitialized(ctx context.Context, guildID string) error {
	query := fmt.Sprintf(`
		UPDATE %s.guilds SET initialized = NULL, updated_at = NOW()
		WHERE guild_id = $1`,
		r.schema)

	if _, err := r.db.ExecContext(ctx, query, guildID); err != nil {
		return fmt.Errorf("failed to clear guild initialized: %w", err)
	}

	return nil
}

// SetAuraChannel records the operator-configured notification channel
func (r *PostgresGuildsRepository) SetAuraChannel(ctx context.Context, guildID, channelID string) error {
	query := fmt.Sprintf(`
		UPDATE %s.guilds SET aura_channel_id = $2, updated_at = NOW()
		WHERE guild_id = $1`,
		r.schema)

	result, err := r.db.ExecContext(ctx, query, guildID, channelID)
	if err != nil {
		return fmt.Errorf("failed to set aura channel: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("guild not found: %s", guildID)
	}

	return nil
}

// ListInitializedGuilds returns all guilds that completed onboarding
func (r *PostgresGuildsRepository) ListInitializedGuilds(ctx context.Context) ([]*models.Guild, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s.guilds WHERE initialized IS NOT NULL ORDER BY guild_id`,
		strings.Join(guildsColumns, ", "), r.schema)

	var guilds []*models.Guild
	if err := r.db.SelectContext(ctx, &guilds, query); err != nil {
		return nil, fmt.Errorf("failed to list initialized guilds: %w", err)
	}

	return guilds, nil
}
