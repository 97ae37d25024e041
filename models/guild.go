package models

import (
	"time"
)

// Guild is the persistent record for a community that installed the bot.
// Guilds are only ever upserted, never deleted; Initialized is nil until the
// first welcome message has been delivered and is reset to nil on guild
// removal so onboarding re-arms if the bot is re-added.
type Guild struct {
	GuildID         string     `db:"guild_id"          json:"guild_id"`
	Name            string     `db:"name"              json:"name"`
	OwnerID         string     `db:"owner_id"          json:"owner_id"`
	SystemChannelID *string    `db:"system_channel_id" json:"system_channel_id"`
	AuraChannelID   *string    `db:"aura_channel_id"   json:"aura_channel_id"`
	Initialized     *time.Time `db:"initialized"       json:"initialized"`
	BotVersion      *string    `db:"bot_version"       json:"bot_version"`
	CreatedAt       time.Time  `db:"created_at"        json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"        json:"updated_at"`
}

// NotificationChannelID resolves where guild-level notices go: the
// operator-configured aura channel wins over the guild's system channel.
func (g *Guild) NotificationChannelID() string {
	if g.AuraChannelID != nil && *g.AuraChannelID != "" {
		return *g.AuraChannelID
	}
	if g.SystemChannelID != nil {
		return *g.SystemChannelID
	}
	return ""
}
