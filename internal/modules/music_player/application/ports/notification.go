package ports

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// NotificationSender defines the interface for sending playback notifications
// to a guild's text channel.
type NotificationSender interface {
	// SendNowPlaying announces a track that just started.
	SendNowPlaying(channelID snowflake.ID, track *domain.Track) error

	// SendRepeated announces a track that started again because repeat is on.
	SendRepeated(channelID snowflake.ID, track *domain.Track) error

	// SendQueueCompleted announces that the queue ran out.
	SendQueueCompleted(channelID snowflake.ID) error

	// SendStopped announces that playback was stopped.
	SendStopped(channelID snowflake.ID) error

	// SendStuck announces a track skipped after stalling for threshold.
	SendStuck(channelID snowflake.ID, track *domain.Track, threshold time.Duration) error

	// SendException announces a track skipped after a node error.
	SendException(channelID snowflake.ID, track *domain.Track, message string) error

	// SendInvalidTrack announces that the next queue slot could not be played.
	SendInvalidTrack(channelID snowflake.ID) error

	// SendError sends an error message embed to the channel.
	SendError(channelID snowflake.ID, message string) error
}
