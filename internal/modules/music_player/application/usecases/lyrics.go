package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// LyricsInput contains the input for the Lyrics use case.
type LyricsInput struct {
	GuildID snowflake.ID
}

// LyricsOutput contains the result of the Lyrics use case.
type LyricsOutput struct {
	Track  *Track
	Lyrics string
}

// LyricsService looks up the lyrics of the current track.
type LyricsService struct {
	sessions *SessionRegistry
	provider ports.LyricsProvider
	executor ports.GuildExecutor
}

// NewLyricsService creates a new LyricsService.
func NewLyricsService(
	sessions *SessionRegistry,
	provider ports.LyricsProvider,
	executor ports.GuildExecutor,
) *LyricsService {
	return &LyricsService{sessions: sessions, provider: provider, executor: executor}
}

// Lyrics returns the lyrics of the track currently playing in the guild.
// The lookup itself runs outside the guild lane.
func (s *LyricsService) Lyrics(ctx context.Context, input LyricsInput) (*LyricsOutput, error) {
	var track *domain.Track
	err := s.executor.Do(ctx, input.GuildID, func(context.Context) error {
		session := s.sessions.TryGet(input.GuildID)
		if session == nil {
			return ErrNotConnected
		}
		current := session.Current()
		if current == nil {
			return ErrNotPlaying
		}
		snapshot := *current
		track = &snapshot
		return nil
	})
	if err != nil {
		return nil, err
	}

	artist, title := track.LyricsSearch()
	lyrics, err := s.provider.Lyrics(ctx, artist, title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLyricsUnavailable, err)
	}
	lyrics = strings.TrimSpace(lyrics)
	if lyrics == "" {
		return nil, ErrNoLyrics
	}

	return &LyricsOutput{Track: track, Lyrics: lyrics}, nil
}
