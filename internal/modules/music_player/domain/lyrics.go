package domain

import (
	"regexp"
	"strings"
)

// Bracketed upload decorations such as "(Official Video)" or "[MV]".
var titleNoise = regexp.MustCompile(
	`(?i)\s*[(\[][^)\]]*\b(official|lyrics?|audio|video|mv|m/v|hd|4k|visuali[sz]er|remaster(ed)?)\b[^)\]]*[)\]]`,
)

// LyricsSearch returns the artist and song title to look lyrics up by.
// Uploads often carry "Artist - Title" in the title while the author is a
// channel name, in which case the title wins.
func (t *Track) LyricsSearch() (artist, title string) {
	title = strings.TrimSpace(titleNoise.ReplaceAllString(t.Title, ""))
	artist = strings.TrimSpace(strings.TrimSuffix(t.Artist, " - Topic"))

	if before, after, ok := strings.Cut(title, " - "); ok {
		artist = strings.TrimSpace(before)
		title = strings.TrimSpace(after)
	}
	return artist, title
}
