package usecases

import (
	"errors"

	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// Errors for the music player module.
var (
	// ErrInvalidQuery is returned when the query is empty.
	ErrInvalidQuery = domain.ErrInvalidQuery

	// ErrInvalidVolume is returned when a volume is out of range.
	ErrInvalidVolume = domain.ErrInvalidVolume

	// ErrUnknownFilter is returned when a filter name is not recognized.
	ErrUnknownFilter = domain.ErrUnknownFilter

	// ErrNoResults is returned when a search yields no results.
	ErrNoResults = errors.New("no results found")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrWrongChannel is returned when the session is bound to another voice channel.
	ErrWrongChannel = errors.New("already connected to another voice channel")

	// ErrNotConnected is returned when an operation requires the bot to be in a voice channel.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrAlreadyPaused is returned when trying to pause while already paused.
	ErrAlreadyPaused = errors.New("playback is already paused")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("playback is not paused")

	// ErrInvalidPosition is returned when an invalid queue position is specified.
	ErrInvalidPosition = errors.New("invalid queue position")

	// ErrNothingToShuffle is returned when fewer than two tracks are queued.
	ErrNothingToShuffle = errors.New("not enough tracks in the queue to shuffle")

	// ErrNotSeekable is returned when the current track does not support seeking.
	ErrNotSeekable = errors.New("the current track cannot be seeked")

	// ErrSeekOutOfRange is returned when the seek target lies outside the track.
	ErrSeekOutOfRange = errors.New("seek position is beyond the track duration")

	// ErrLiveStream is returned when repeat is requested for a livestream.
	ErrLiveStream = errors.New("livestreams cannot be repeated")

	// ErrNoLyrics is returned when no lyrics are known for the current track.
	ErrNoLyrics = errors.New("no lyrics found for this track")

	// ErrLyricsUnavailable wraps failures of the lyrics lookup.
	ErrLyricsUnavailable = errors.New("lyrics lookup failed")

	// ErrNodeCommandFailed wraps failures reported by the audio node.
	ErrNodeCommandFailed = errors.New("audio node command failed")

	// ErrPersistenceFailed wraps failures of the settings store.
	ErrPersistenceFailed = errors.New("failed to save settings")
)

var rejections = []error{
	ErrInvalidQuery,
	ErrInvalidVolume,
	ErrUnknownFilter,
	ErrNoResults,
	ErrUserNotInVoice,
	ErrWrongChannel,
	ErrNotConnected,
	ErrNotPlaying,
	ErrAlreadyPaused,
	ErrNotPaused,
	ErrInvalidPosition,
	ErrNothingToShuffle,
	ErrNotSeekable,
	ErrSeekOutOfRange,
	ErrLiveStream,
	ErrNoLyrics,
}

// IsRejection reports whether err is a request rejected with a reason the
// user can act on, as opposed to a failure of a collaborator.
func IsRejection(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
