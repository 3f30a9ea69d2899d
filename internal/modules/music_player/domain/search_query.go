package domain

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidQuery is returned when a query is empty or cannot be classified.
var ErrInvalidQuery = errors.New("please enter a search term or a link")

// SearchSource is the catalog a bare search term is looked up in.
type SearchSource int

const (
	SourceUnknown SearchSource = iota
	SourceYouTube
	SourceYouTubeMusic
	SourceSoundCloud
	SourceTwitch
)

// ParseSearchSource converts a source name to a SearchSource.
func ParseSearchSource(s string) SearchSource {
	switch strings.ToLower(s) {
	case "youtube", "yt":
		return SourceYouTube
	case "ytmusic", "youtubemusic", "ytm":
		return SourceYouTubeMusic
	case "soundcloud", "sc":
		return SourceSoundCloud
	case "twitch":
		return SourceTwitch
	default:
		return SourceUnknown
	}
}

// searchPrefix returns the Lavalink search prefix for the source.
// Twitch has no search catalog, so it falls back to YouTube like unknown sources.
func (s SearchSource) searchPrefix() string {
	switch s {
	case SourceYouTubeMusic:
		return "ytmsearch"
	case SourceSoundCloud:
		return "scsearch"
	default:
		return "ytsearch"
	}
}

// QueryKind is the explicit kind of a classified query.
type QueryKind int

const (
	KindInvalid QueryKind = iota
	KindSearch
	KindVideoLink
	KindYouTubePlaylistLink
	KindYouTubeMusicPlaylistLink
	KindMusicLink
	KindSoundCloudPlaylistLink
	KindSoundCloudTrackLink
	KindTwitchStreamLink
)

// String returns a human-readable representation of the kind.
func (k QueryKind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindVideoLink:
		return "youtube_video"
	case KindYouTubePlaylistLink:
		return "youtube_playlist"
	case KindYouTubeMusicPlaylistLink:
		return "youtube_music_playlist"
	case KindMusicLink:
		return "youtube_music"
	case KindSoundCloudPlaylistLink:
		return "soundcloud_playlist"
	case KindSoundCloudTrackLink:
		return "soundcloud_track"
	case KindTwitchStreamLink:
		return "twitch_stream"
	default:
		return "invalid"
	}
}

// IsPlaylist returns true for the playlist link kinds.
func (k QueryKind) IsPlaylist() bool {
	switch k {
	case KindYouTubePlaylistLink, KindYouTubeMusicPlaylistLink, KindSoundCloudPlaylistLink:
		return true
	default:
		return false
	}
}

var twitchChannelPattern = regexp.MustCompile(`^https?://(?:www\.)?twitch\.tv/[A-Za-z0-9_]+/?$`)

// SearchQuery is a classified, normalized user request.
type SearchQuery struct {
	Raw        string       // Trimmed input as typed by the user
	Source     SearchSource // Catalog used when Kind is KindSearch
	Kind       QueryKind
	Query      string // Normalized link or the search term
	IsPlaylist bool
}

// ClassifyQuery classifies raw user input into a SearchQuery.
// The hint selects the catalog for bare search terms.
func ClassifyQuery(raw string, hint SearchSource) (SearchQuery, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return SearchQuery{}, ErrInvalidQuery
	}

	kind := classify(input)
	query, kind := normalize(input, kind)

	return SearchQuery{
		Raw:        input,
		Source:     hint,
		Kind:       kind,
		Query:      query,
		IsPlaylist: kind.IsPlaylist(),
	}, nil
}

// Identifier returns the identifier passed to the node's track loader.
func (q SearchQuery) Identifier() string {
	if q.Kind == KindSearch {
		return q.Source.searchPrefix() + ":" + q.Query
	}
	return q.Query
}

// IsLink returns true if the query is a direct link rather than a search term.
func (q SearchQuery) IsLink() bool {
	return q.Kind != KindSearch && q.Kind != KindInvalid
}

// classify runs the ordered cascade; the first match wins.
func classify(input string) QueryKind {
	isHTTP := hasAnyPrefix(input, "http://", "https://")

	isYouTube := isHTTP && containsAny(input,
		"youtube.com/watch?v=", "youtu.be/", "youtube.com/playlist?list=",
	)
	if isYouTube && containsAny(input, "&list=", "?list=") {
		return KindYouTubePlaylistLink
	}

	if twitchChannelPattern.MatchString(input) {
		return KindTwitchStreamLink
	}

	if isHTTP && containsAny(input, "youtube.com/watch?v=", "youtu.be/") {
		return KindVideoLink
	}

	if hasAnyPrefix(input, "http://music.youtube.com", "https://music.youtube.com") {
		if containsAny(input, "&list", "?list") {
			return KindYouTubeMusicPlaylistLink
		}
		return KindMusicLink
	}

	if hasAnyPrefix(input, "http://soundcloud.com", "https://soundcloud.com") {
		if strings.Contains(input, "/sets/") {
			return KindSoundCloudPlaylistLink
		}
		return KindSoundCloudTrackLink
	}

	return KindSearch
}

// normalize rewrites YouTube playlist links that carry a video in front of the
// list marker into the "&list" form understood by the track loader.
// Links already in "playlist?list=" form are kept verbatim.
func normalize(input string, kind QueryKind) (string, QueryKind) {
	if kind != KindYouTubePlaylistLink && kind != KindYouTubeMusicPlaylistLink {
		return input, kind
	}
	if strings.Contains(input, "playlist?list") {
		return input, kind
	}

	rewritten, ok := spliceListMarker(input)
	if !ok {
		// No usable list marker: treat it as the single item it points at.
		if kind == KindYouTubeMusicPlaylistLink {
			return input, KindMusicLink
		}
		return input, KindVideoLink
	}
	return rewritten, kind
}

// spliceListMarker keeps "scheme://host/" and everything from the list marker on,
// dropping the domain-relative part in between.
func spliceListMarker(input string) (string, bool) {
	schemeEnd := strings.Index(input, "://")
	if schemeEnd < 0 {
		return "", false
	}
	pathStart := strings.IndexByte(input[schemeEnd+3:], '/')
	if pathStart < 0 {
		return "", false
	}
	start := schemeEnd + 3 + pathStart + 1

	rest := input[start:]
	marker := strings.Index(rest, "&list")
	if marker < 0 {
		marker = strings.Index(rest, "?list")
	}
	if marker < 0 {
		return "", false
	}

	// Skip the marker's leading separator so both forms splice as "&list".
	return input[:start] + "&" + rest[marker+1:], true
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
