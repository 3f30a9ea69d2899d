package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

const defaultSuggestionLimit = 25

// SearchSuggestionsInput contains the input for the SearchSuggestions use case.
type SearchSuggestionsInput struct {
	Query  string
	Source domain.SearchSource
	Limit  int // Defaults to 25, the most Discord displays
}

// SearchSuggestionsOutput contains suggestions for the play command.
type SearchSuggestionsOutput struct {
	IsPlaylist   bool
	PlaylistName string
	PlaylistURL  string // Normalized link for the "add all" choice
	TrackCount   int    // Total tracks in playlist
	Tracks       []*domain.Track
}

// AutocompleteService backs autocomplete for the play, skip and trackinfo commands.
type AutocompleteService struct {
	sessions *SessionRegistry
	resolver ports.TrackResolver
	executor ports.GuildExecutor
}

// NewAutocompleteService creates a new AutocompleteService.
func NewAutocompleteService(
	sessions *SessionRegistry,
	resolver ports.TrackResolver,
	executor ports.GuildExecutor,
) *AutocompleteService {
	return &AutocompleteService{sessions: sessions, resolver: resolver, executor: executor}
}

// SearchSuggestions resolves a partially typed query. Empty input yields no
// suggestions.
func (s *AutocompleteService) SearchSuggestions(
	ctx context.Context,
	input SearchSuggestionsInput,
) (*SearchSuggestionsOutput, error) {
	query, err := domain.ClassifyQuery(input.Query, input.Source)
	if err != nil {
		return &SearchSuggestionsOutput{}, nil
	}

	list, err := s.resolver.LoadTracks(ctx, query)
	if err != nil {
		return nil, err
	}
	if list.IsEmpty() {
		return &SearchSuggestionsOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}

	output := &SearchSuggestionsOutput{TrackCount: len(list.Tracks)}
	tracks := list.Tracks
	if list.Type == domain.TrackListTypePlaylist {
		output.IsPlaylist = true
		output.PlaylistName = list.Name
		output.PlaylistURL = query.Query
		// Leave room for the "add all" choice.
		limit--
	}
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}
	output.Tracks = tracks

	return output, nil
}

// QueueSuggestions returns up to limit queued tracks with their positions.
func (s *AutocompleteService) QueueSuggestions(
	ctx context.Context,
	guildID snowflake.ID,
	limit int,
) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := s.executor.Do(ctx, guildID, func(context.Context) error {
		session := s.sessions.TryGet(guildID)
		if session == nil {
			return nil
		}
		for position, track := range session.Queue.Peek(limit) {
			entries = append(entries, QueueEntry{Position: position, Track: track})
		}
		return nil
	})
	return entries, err
}
