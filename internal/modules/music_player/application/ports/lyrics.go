package ports

import "context"

// LyricsProvider looks up song lyrics.
type LyricsProvider interface {
	// Lyrics returns the lyrics of a song, or "" when none are known.
	Lyrics(ctx context.Context, artist, title string) (string, error)
}
