package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AIUsage records one chat-completion call for cost accounting.
type AIUsage struct {
	ID           string          `db:"id"            json:"id"`
	GuildID      *string         `db:"guild_id"      json:"guild_id"`
	Provider     string          `db:"provider"      json:"provider"`
	Model        string          `db:"model"         json:"model"`
	InputTokens  int             `db:"input_tokens"  json:"input_tokens"`
	OutputTokens int             `db:"output_tokens" json:"output_tokens"`
	Cost         decimal.Decimal `db:"cost"          json:"cost"`
	CreatedAt    time.Time       `db:"created_at"    json:"created_at"`
}
