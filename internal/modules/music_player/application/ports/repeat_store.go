package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// RepeatStore persists the per-guild repeat flag.
type RepeatStore interface {
	GetRepeat(ctx context.Context, guildID snowflake.ID) (bool, error)
	SetRepeat(ctx context.Context, guildID snowflake.ID, enabled bool) error
}
