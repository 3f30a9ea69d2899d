package ports

import (
	"context"

	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// TrackResolver defines the interface for loading/searching tracks.
type TrackResolver interface {
	// LoadTracks resolves the query on the node.
	// A load with no matches returns an empty list and no error.
	LoadTracks(ctx context.Context, query domain.SearchQuery) (*domain.TrackList, error)
}
