package usecases

import (
	"context"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
)

// RepeatMode reads and writes the persisted per-guild repeat flag.
// Store failures never block playback: reads fall back to false and writes
// report false.
type RepeatMode struct {
	store ports.RepeatStore
}

// NewRepeatMode creates a new RepeatMode.
func NewRepeatMode(store ports.RepeatStore) *RepeatMode {
	return &RepeatMode{store: store}
}

// Get returns whether repeat is enabled for the guild.
func (r *RepeatMode) Get(ctx context.Context, guildID snowflake.ID) bool {
	enabled, err := r.store.GetRepeat(ctx, guildID)
	if err != nil {
		slog.Warn("failed to read repeat flag", "guild", guildID, "error", err)
		return false
	}
	return enabled
}

// Set stores the flag and reports whether the write succeeded.
func (r *RepeatMode) Set(ctx context.Context, guildID snowflake.ID, enabled bool) bool {
	if err := r.store.SetRepeat(ctx, guildID, enabled); err != nil {
		slog.Warn("failed to write repeat flag", "guild", guildID, "enabled", enabled, "error", err)
		return false
	}
	return true
}
