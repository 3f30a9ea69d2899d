package domain

// TrackListType represents the shape of a node load result.
type TrackListType int

const (
	TrackListTypeTrack TrackListType = iota
	TrackListTypePlaylist
	TrackListTypeSearch
)

// TrackList is the result of resolving a query on the node.
type TrackList struct {
	Type   TrackListType
	Name   string // Playlist name, empty otherwise
	Tracks []*Track
}

// IsEmpty returns true if the load produced no tracks.
func (l *TrackList) IsEmpty() bool {
	return l == nil || len(l.Tracks) == 0
}

// Selection returns the tracks a request should act on: every track of a
// playlist, or the best match otherwise.
func (l *TrackList) Selection() []*Track {
	if l.IsEmpty() {
		return nil
	}
	if l.Type == TrackListTypePlaylist {
		return l.Tracks
	}
	return l.Tracks[:1]
}
