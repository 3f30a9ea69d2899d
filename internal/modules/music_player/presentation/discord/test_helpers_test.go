package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// mockPlayback is a hand-written Playback double. Unset funcs return zero values.
type mockPlayback struct {
	playFn      func(usecases.PlayInput) (*usecases.PlayOutput, error)
	joinFn      func(usecases.JoinInput) (*usecases.JoinOutput, error)
	skipFn      func(usecases.SkipInput) (*usecases.SkipOutput, error)
	seekFn      func(usecases.SeekInput) error
	setFilterFn func(usecases.SetFilterInput) (domain.Filter, error)
	setVolumeFn func(usecases.SetVolumeInput) (domain.Volume, error)
	getVolume   domain.Volume
	repeat      bool
	queueFn     func(usecases.QueueInput) (*usecases.QueueOutput, error)
	trackInfoFn func(usecases.TrackInfoInput) (*domain.Track, error)

	// guildErr is returned by the session controls.
	guildErr error
	calls    []string
	controls []usecases.ControlInput
}

func (m *mockPlayback) control(name string, input usecases.ControlInput) {
	m.calls = append(m.calls, name)
	m.controls = append(m.controls, input)
}

func (m *mockPlayback) Play(_ context.Context, input usecases.PlayInput) (*usecases.PlayOutput, error) {
	m.calls = append(m.calls, "play")
	return m.playFn(input)
}

func (m *mockPlayback) Join(_ context.Context, input usecases.JoinInput) (*usecases.JoinOutput, error) {
	m.calls = append(m.calls, "join")
	return m.joinFn(input)
}

func (m *mockPlayback) Leave(_ context.Context, input usecases.ControlInput) error {
	m.control("leave", input)
	return m.guildErr
}

func (m *mockPlayback) Skip(_ context.Context, input usecases.SkipInput) (*usecases.SkipOutput, error) {
	m.calls = append(m.calls, "skip")
	return m.skipFn(input)
}

func (m *mockPlayback) Stop(_ context.Context, input usecases.ControlInput) error {
	m.control("stop", input)
	return m.guildErr
}

func (m *mockPlayback) Pause(_ context.Context, input usecases.ControlInput) error {
	m.control("pause", input)
	return m.guildErr
}

func (m *mockPlayback) Resume(_ context.Context, input usecases.ControlInput) error {
	m.control("resume", input)
	return m.guildErr
}

func (m *mockPlayback) Seek(_ context.Context, input usecases.SeekInput) error {
	m.calls = append(m.calls, "seek")
	return m.seekFn(input)
}

func (m *mockPlayback) SetFilter(_ context.Context, input usecases.SetFilterInput) (domain.Filter, error) {
	m.calls = append(m.calls, "filter")
	return m.setFilterFn(input)
}

func (m *mockPlayback) ResetFilter(_ context.Context, input usecases.ControlInput) error {
	m.control("reset", input)
	return m.guildErr
}

func (m *mockPlayback) SetVolume(_ context.Context, input usecases.SetVolumeInput) (domain.Volume, error) {
	m.calls = append(m.calls, "set_volume")
	return m.setVolumeFn(input)
}

func (m *mockPlayback) GetVolume(_ context.Context, input usecases.ControlInput) (domain.Volume, error) {
	m.control("get_volume", input)
	return m.getVolume, m.guildErr
}

func (m *mockPlayback) ToggleRepeat(_ context.Context, input usecases.ControlInput) (bool, error) {
	m.control("repeat", input)
	return m.repeat, m.guildErr
}

func (m *mockPlayback) Shuffle(_ context.Context, input usecases.ControlInput) error {
	m.control("shuffle", input)
	return m.guildErr
}

func (m *mockPlayback) Queue(_ context.Context, input usecases.QueueInput) (*usecases.QueueOutput, error) {
	m.calls = append(m.calls, "queue")
	return m.queueFn(input)
}

func (m *mockPlayback) TrackInfo(_ context.Context, input usecases.TrackInfoInput) (*domain.Track, error) {
	m.calls = append(m.calls, "trackinfo")
	return m.trackInfoFn(input)
}

type mockStats struct {
	output *usecases.StatsOutput
}

func (m *mockStats) Stats() *usecases.StatsOutput {
	return m.output
}

type mockLyrics struct {
	output *usecases.LyricsOutput
	err    error
	input  usecases.LyricsInput
}

func (m *mockLyrics) Lyrics(_ context.Context, input usecases.LyricsInput) (*usecases.LyricsOutput, error) {
	m.input = input
	return m.output, m.err
}

type mockSuggester struct {
	search      *usecases.SearchSuggestionsOutput
	searchErr   error
	searchInput usecases.SearchSuggestionsInput
	queue       []usecases.QueueEntry
	queueErr    error
}

func (m *mockSuggester) SearchSuggestions(
	_ context.Context,
	input usecases.SearchSuggestionsInput,
) (*usecases.SearchSuggestionsOutput, error) {
	m.searchInput = input
	return m.search, m.searchErr
}

func (m *mockSuggester) QueueSuggestions(context.Context, snowflake.ID, int) ([]usecases.QueueEntry, error) {
	return m.queue, m.queueErr
}

const (
	testGuildID   = "100"
	testUserID    = "200"
	testChannelID = "300"
)

// newCommand builds a guild slash command interaction.
func newCommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuildID,
			ChannelID: testChannelID,
			Member:    &discordgo.Member{User: &discordgo.User{ID: testUserID}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

// intOpt mirrors the gateway, which decodes integers as float64.
func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(value),
	}
}

func testTrack(title string) *domain.Track {
	return &domain.Track{
		Identifier: title,
		Encoded:    "enc-" + title,
		Title:      title,
		Artist:     "Artist",
		Duration:   3 * time.Minute,
		URI:        "https://youtu.be/" + title,
		SourceName: "youtube",
		IsSeekable: true,
	}
}
