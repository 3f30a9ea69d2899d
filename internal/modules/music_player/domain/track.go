package domain

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Track is a playable item resolved by the audio node.
// The Encoded blob identifies the track towards the node and is what
// lifecycle events carry back, so two tracks are the same item iff their
// Encoded values match.
type Track struct {
	Identifier  string // Source-specific identifier, e.g. a YouTube video ID
	Encoded     string // Node encoded track data
	Title       string
	Artist      string
	Duration    time.Duration
	URI         string
	ArtworkURL  string
	SourceName  string // e.g., "youtube", "soundcloud", "twitch"
	IsStream    bool
	IsSeekable  bool
	RequesterID snowflake.ID // Discord user who requested the track
	EnqueuedAt  time.Time
}

// Source returns the parsed TrackSource for this track.
func (t *Track) Source() TrackSource {
	return ParseTrackSource(t.SourceName)
}

// IsValid returns true if the track can be handed to the node.
func (t *Track) IsValid() bool {
	return t != nil && t.Encoded != ""
}

// SameAs reports whether both handles refer to the same node item.
func (t *Track) SameAs(other *Track) bool {
	if t == nil || other == nil {
		return false
	}
	return t.Encoded == other.Encoded
}

// RequestedBy returns a copy of the track attributed to the given user.
func (t Track) RequestedBy(userID snowflake.ID) *Track {
	t.RequesterID = userID
	t.EnqueuedAt = time.Now().UTC()
	return &t
}

// FormattedDuration returns the duration as mm:ss or hh:mm:ss, or LIVE for streams.
func (t *Track) FormattedDuration() string {
	if t.IsStream {
		return "LIVE"
	}
	return FormatDuration(t.Duration)
}

// FormatDuration renders d as mm:ss, or hh:mm:ss once it reaches an hour.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
