package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

// PrefixStore reads and writes the per-guild prefix.
type PrefixStore interface {
	GetPrefix(ctx context.Context, guildID snowflake.ID) (string, error)
	SetPrefix(ctx context.Context, guildID snowflake.ID, prefix string) error
}

// PrefixInteractor shows and changes a guild's prefix.
type PrefixInteractor struct {
	store    PrefixStore
	fallback string
}

// NewPrefixInteractor creates a new PrefixInteractor.
// fallback is reported for guilds without a stored prefix.
func NewPrefixInteractor(store PrefixStore, fallback string) *PrefixInteractor {
	return &PrefixInteractor{
		store:    store,
		fallback: fallback,
	}
}

// Get returns the guild's effective prefix.
// A store failure is logged and reported as the fallback.
func (p *PrefixInteractor) Get(ctx context.Context, guildID snowflake.ID) string {
	prefix, err := p.store.GetPrefix(ctx, guildID)
	if err != nil {
		slog.Warn("failed to get prefix, using fallback", "guild", guildID, "error", err)
		return p.fallback
	}
	if prefix == "" {
		return p.fallback
	}
	return prefix
}

// Set validates and stores a new prefix, returning the stored value.
func (p *PrefixInteractor) Set(ctx context.Context, guildID snowflake.ID, raw string) (string, error) {
	prefix, err := domain.ValidatePrefix(raw)
	if err != nil {
		return "", err
	}
	if err := p.store.SetPrefix(ctx, guildID, prefix); err != nil {
		return "", fmt.Errorf("failed to set prefix: %w", err)
	}
	return prefix, nil
}
