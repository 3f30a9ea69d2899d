package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// GuildExecutor runs work on a per-guild serial lane.
// Work for one guild never interleaves; different guilds run in parallel.
type GuildExecutor interface {
	// Do runs fn on the guild's lane and waits for its result.
	Do(ctx context.Context, guildID snowflake.ID, fn func(ctx context.Context) error) error

	// Go enqueues fn on the guild's lane without waiting.
	Go(guildID snowflake.ID, fn func(ctx context.Context))
}
