package discord

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

func newAutocomplete(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	i := newCommand(name, options...)
	i.Type = discordgo.InteractionApplicationCommandAutocomplete
	return i
}

func TestAutocomplete_Play(t *testing.T) {
	long := testTrack("long")
	long.URI = "https://example.com/" + strings.Repeat("x", 100)

	tests := []struct {
		name   string
		output *usecases.SearchSuggestionsOutput
		want   []string
	}{
		{
			name: "search results",
			output: &usecases.SearchSuggestionsOutput{
				TrackCount: 2,
				Tracks:     []*domain.Track{testTrack("a"), testTrack("b")},
			},
			want: []string{"🎵 a - Artist", "🎵 b - Artist"},
		},
		{
			name: "playlist gets an add-all choice",
			output: &usecases.SearchSuggestionsOutput{
				IsPlaylist:   true,
				PlaylistName: "Mix",
				PlaylistURL:  "https://www.youtube.com/playlist?list=PL1",
				TrackCount:   40,
				Tracks:       []*domain.Track{testTrack("a")},
			},
			want: []string{"📋 Mix (40 tracks)", "🎵 1. a - Artist"},
		},
		{
			name: "overlong links are skipped",
			output: &usecases.SearchSuggestionsOutput{
				TrackCount: 2,
				Tracks:     []*domain.Track{long, testTrack("b")},
			},
			want: []string{"🎵 b - Artist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggester := &mockSuggester{search: tt.output}
			h := NewAutocompleteHandler(suggester)

			choices, ok := h.Choices(newAutocomplete("play", stringOpt("query", "lofi"), stringOpt("source", "ytmusic")))
			if !ok {
				t.Fatal("expected play to support autocomplete")
			}

			if suggester.searchInput.Source != domain.SourceYouTubeMusic {
				t.Errorf("expected source hint to be forwarded, got %v", suggester.searchInput.Source)
			}
			if len(choices) != len(tt.want) {
				t.Fatalf("expected %d choices, got %d", len(tt.want), len(choices))
			}
			for idx, name := range tt.want {
				if choices[idx].Name != name {
					t.Errorf("choice %d: expected %q, got %q", idx, name, choices[idx].Name)
				}
			}
		})
	}
}

func TestAutocomplete_Play_ShortOrFailing(t *testing.T) {
	suggester := &mockSuggester{searchErr: errors.New("node down")}
	h := NewAutocompleteHandler(suggester)

	for _, query := range []string{"", "a", "lofi"} {
		choices, ok := h.Choices(newAutocomplete("play", stringOpt("query", query)))
		if !ok {
			t.Fatal("expected play to support autocomplete")
		}
		if choices == nil || len(choices) != 0 {
			t.Errorf("query %q: expected an empty choice list, got %v", query, choices)
		}
	}
}

func TestAutocomplete_QueuePositions(t *testing.T) {
	suggester := &mockSuggester{queue: []usecases.QueueEntry{
		{Position: 1, Track: testTrack("a")},
		{Position: 2, Track: testTrack(strings.Repeat("y", 120))},
	}}
	h := NewAutocompleteHandler(suggester)

	for _, command := range []string{"skip", "trackinfo"} {
		choices, ok := h.Choices(newAutocomplete(command, intOpt("position", 0)))
		if !ok {
			t.Fatalf("expected %s to support autocomplete", command)
		}
		if len(choices) != 2 {
			t.Fatalf("expected 2 choices, got %d", len(choices))
		}
		if choices[0].Name != "1. a" || choices[0].Value != 1 {
			t.Errorf("unexpected first choice %+v", choices[0])
		}
		if n := len([]rune(choices[1].Name)); n > maxChoiceName {
			t.Errorf("expected name to be truncated, got %d runes", n)
		}
	}
}

func TestAutocomplete_UnsupportedCommand(t *testing.T) {
	h := NewAutocompleteHandler(&mockSuggester{})

	if _, ok := h.Choices(newAutocomplete("stop")); ok {
		t.Error("expected stop to have no autocomplete")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	if got := truncate("ちぇりーちぇりー", 5); got != "ちぇ..." {
		t.Errorf("expected rune-aware truncation, got %q", got)
	}
}
