package application

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// GuildStore creates and removes per-guild settings rows.
type GuildStore interface {
	CreateGuild(ctx context.Context, guildID snowflake.ID) error
	RemoveGuild(ctx context.Context, guildID snowflake.ID) error
}

// GuildInteractor keeps settings rows in step with guild membership.
type GuildInteractor struct {
	store GuildStore
}

// NewGuildInteractor creates a new GuildInteractor.
func NewGuildInteractor(store GuildStore) *GuildInteractor {
	return &GuildInteractor{store: store}
}

// Joined creates the guild's row. Existing rows are kept.
func (g *GuildInteractor) Joined(ctx context.Context, guildID snowflake.ID) error {
	if err := g.store.CreateGuild(ctx, guildID); err != nil {
		return fmt.Errorf("failed to create guild %s: %w", guildID, err)
	}
	return nil
}

// Left removes the guild's row.
func (g *GuildInteractor) Left(ctx context.Context, guildID snowflake.ID) error {
	if err := g.store.RemoveGuild(ctx, guildID); err != nil {
		return fmt.Errorf("failed to remove guild %s: %w", guildID, err)
	}
	return nil
}
