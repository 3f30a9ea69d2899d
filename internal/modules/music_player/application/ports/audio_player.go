package ports

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// AudioPlayer defines the interface for audio playback operations on the node.
type AudioPlayer interface {
	// Play starts the track at the given offset, replacing whatever is loaded.
	Play(ctx context.Context, guildID snowflake.ID, track *domain.Track, startAt time.Duration) error

	// Stop stops the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Pause pauses the current playback.
	Pause(ctx context.Context, guildID snowflake.ID) error

	// Resume resumes the paused playback.
	Resume(ctx context.Context, guildID snowflake.ID) error

	// Seek moves the playhead of the current track.
	Seek(ctx context.Context, guildID snowflake.ID, position time.Duration) error

	// ApplyFilter replaces the player's filters and volume.
	ApplyFilter(ctx context.Context, guildID snowflake.ID, filter domain.Filter, volume domain.Volume) error
}
