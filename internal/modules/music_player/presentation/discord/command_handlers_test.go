package discord

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// embedOf returns the single embed of the last response.
func embedOf(t *testing.T, r *bot.MockResponder) *discordgo.MessageEmbed {
	t.Helper()
	if r.LastResponse == nil || r.LastResponse.Data == nil {
		t.Fatal("expected a response")
	}
	if len(r.LastResponse.Data.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(r.LastResponse.Data.Embeds))
	}
	return r.LastResponse.Data.Embeds[0]
}

func TestCommandHandlers_HandlersCoverCommands(t *testing.T) {
	handlers := NewCommandHandlers(&mockPlayback{}, &mockStats{}, &mockLyrics{}).Handlers()

	commands := Commands()
	if len(handlers) != len(commands) {
		t.Errorf("expected %d handlers, got %d", len(commands), len(handlers))
	}
	for _, cmd := range commands {
		if _, ok := handlers[cmd.Name]; !ok {
			t.Errorf("expected handler for command %q", cmd.Name)
		}
	}
}

func TestHandlePlay(t *testing.T) {
	tests := []struct {
		name   string
		output *usecases.PlayOutput
		want   string
	}{
		{
			name:   "started",
			output: &usecases.PlayOutput{Tracks: []*domain.Track{testTrack("a")}, Started: true},
			want:   "Playing [a](https://youtu.be/a).",
		},
		{
			name:   "enqueued",
			output: &usecases.PlayOutput{Tracks: []*domain.Track{testTrack("a")}, Position: 3},
			want:   "Added [a](https://youtu.be/a) to the queue at position **3**.",
		},
		{
			name: "playlist started",
			output: &usecases.PlayOutput{
				Tracks:       []*domain.Track{testTrack("a"), testTrack("b"), testTrack("c")},
				PlaylistName: "Mix",
				Started:      true,
				Position:     1,
			},
			want: "Playing [a](https://youtu.be/a) and added **2 tracks** from playlist **Mix** to the queue.",
		},
		{
			name: "playlist enqueued",
			output: &usecases.PlayOutput{
				Tracks:       []*domain.Track{testTrack("a"), testTrack("b")},
				PlaylistName: "Mix",
				Position:     4,
			},
			want: "Added **2 tracks** from playlist **Mix** to the queue.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecases.PlayInput
			playback := &mockPlayback{
				playFn: func(input usecases.PlayInput) (*usecases.PlayOutput, error) {
					got = input
					return tt.output, nil
				},
			}
			h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
			r := &bot.MockResponder{}

			err := h.HandlePlay(nil, newCommand("play", stringOpt("query", "lofi"), stringOpt("source", "soundcloud")), r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !r.Deferred {
				t.Error("expected the interaction to be deferred")
			}
			if got.Query != "lofi" || got.Source != domain.SourceSoundCloud {
				t.Errorf("unexpected input %+v", got)
			}
			if got.GuildID.String() != testGuildID || got.UserID.String() != testUserID ||
				got.TextChannelID.String() != testChannelID {
				t.Errorf("unexpected IDs in input %+v", got)
			}
			if desc := embedOf(t, r).Description; desc != tt.want {
				t.Errorf("expected %q, got %q", tt.want, desc)
			}
		})
	}
}

func TestHandlePlay_Errors(t *testing.T) {
	nodeErr := fmt.Errorf("%w: load tracks: timeout", usecases.ErrNodeCommandFailed)

	tests := []struct {
		name      string
		err       error
		wantErr   error
		wantReply string
	}{
		{name: "not in voice", err: usecases.ErrUserNotInVoice, wantReply: "Where are you? Join a voice channel first."},
		{name: "no results", err: usecases.ErrNoResults, wantReply: "I couldn't find anything for that."},
		{name: "wrong channel", err: usecases.ErrWrongChannel, wantReply: "I'm currently in another channel."},
		{name: "node failure", err: nodeErr, wantErr: usecases.ErrNodeCommandFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playback := &mockPlayback{
				playFn: func(usecases.PlayInput) (*usecases.PlayOutput, error) {
					return nil, tt.err
				},
			}
			h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
			r := &bot.MockResponder{}

			err := h.HandlePlay(nil, newCommand("play", stringOpt("query", "lofi")), r)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				if r.LastResponse != nil {
					t.Error("expected failures to be left to the bot")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			embed := embedOf(t, r)
			if embed.Title != "Error" || embed.Description != tt.wantReply {
				t.Errorf("expected error reply %q, got %q", tt.wantReply, embed.Description)
			}
		})
	}
}

func TestHandlePlay_DirectMessage(t *testing.T) {
	playback := &mockPlayback{}
	h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
	r := &bot.MockResponder{}

	i := newCommand("play", stringOpt("query", "lofi"))
	i.GuildID = ""
	i.Member = nil

	if err := h.HandlePlay(nil, i, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedOf(t, r).Description != guildOnlyMessage {
		t.Errorf("expected guild-only reply")
	}
	if len(playback.calls) != 0 {
		t.Errorf("expected no playback calls, got %v", playback.calls)
	}
}

func TestSimpleCommands(t *testing.T) {
	tests := []struct {
		name    string
		handler func(h *CommandHandlers) bot.InteractionHandler
		err     error
		want    string
	}{
		{name: "pause", handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandlePause }, want: "**Paused** ⏸️"},
		{name: "resume", handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleResume }, want: "**Resumed** ▶️"},
		{name: "stop", handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleStop }, want: "Stopped playback."},
		{name: "leave", handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleLeave }, want: "Disconnected."},
		{name: "shuffle", handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleShuffle }, want: "**Shuffled** 🔀"},
		{name: "reset", handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleReset }, want: "Removed all filters."},
		{
			name:    "already paused",
			handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandlePause },
			err:     usecases.ErrAlreadyPaused,
			want:    "I'm already pausing music.",
		},
		{
			name:    "not paused",
			handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleResume },
			err:     usecases.ErrNotPaused,
			want:    "I'm already playing music.",
		},
		{
			name:    "nothing to shuffle",
			handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleShuffle },
			err:     usecases.ErrNothingToShuffle,
			want:    "I have nothing to shuffle.",
		},
		{
			name:    "not connected",
			handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleStop },
			err:     usecases.ErrNotConnected,
			want:    "I'm not in any channel.",
		},
		{
			name:    "requester not in voice",
			handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleStop },
			err:     usecases.ErrUserNotInVoice,
			want:    "Where are you? Join a voice channel first.",
		},
		{
			name:    "requester in another channel",
			handler: func(h *CommandHandlers) bot.InteractionHandler { return h.HandleLeave },
			err:     usecases.ErrWrongChannel,
			want:    "I'm currently in another channel.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playback := &mockPlayback{guildErr: tt.err}
			h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
			r := &bot.MockResponder{}

			if err := tt.handler(h)(nil, newCommand(tt.name), r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := usecases.ControlInput{GuildID: 100, UserID: 200}
			if len(playback.controls) != 1 || playback.controls[0] != want {
				t.Errorf("expected control input %+v, got %+v", want, playback.controls)
			}

			embed := embedOf(t, r)
			if embed.Description != tt.want {
				t.Errorf("expected %q, got %q", tt.want, embed.Description)
			}
			if (tt.err != nil) != (embed.Color == colorError) {
				t.Errorf("unexpected embed color %#x", embed.Color)
			}
		})
	}
}

func TestHandleJoin(t *testing.T) {
	for _, already := range []bool{false, true} {
		playback := &mockPlayback{
			joinFn: func(usecases.JoinInput) (*usecases.JoinOutput, error) {
				return &usecases.JoinOutput{VoiceChannelID: 555, AlreadyJoined: already}, nil
			},
		}
		h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
		r := &bot.MockResponder{}

		if err := h.HandleJoin(nil, newCommand("join"), r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "Connected to <#555>."
		if already {
			want = "Already connected to <#555>."
		}
		if got := embedOf(t, r).Description; got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestHandleSkip(t *testing.T) {
	tests := []struct {
		name      string
		options   []*discordgo.ApplicationCommandInteractionDataOption
		output    *usecases.SkipOutput
		wantPos   int
		wantReply string
	}{
		{
			name:      "skip to next",
			output:    &usecases.SkipOutput{Skipped: testTrack("a"), Next: testTrack("b")},
			wantReply: "**Skipped** ⏭️ [a](https://youtu.be/a)",
		},
		{
			name:      "skip last",
			output:    &usecases.SkipOutput{Skipped: testTrack("a")},
			wantReply: "**Skipped** ⏭️ [a](https://youtu.be/a)\nThe queue is empty.",
		},
		{
			name:      "remove by position",
			options:   []*discordgo.ApplicationCommandInteractionDataOption{intOpt("position", 2)},
			output:    &usecases.SkipOutput{Skipped: testTrack("c"), Removed: true},
			wantPos:   2,
			wantReply: "Dequeued [c](https://youtu.be/c).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecases.SkipInput
			playback := &mockPlayback{
				skipFn: func(input usecases.SkipInput) (*usecases.SkipOutput, error) {
					got = input
					return tt.output, nil
				},
			}
			h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
			r := &bot.MockResponder{}

			if err := h.HandleSkip(nil, newCommand("skip", tt.options...), r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Position != tt.wantPos {
				t.Errorf("expected position %d, got %d", tt.wantPos, got.Position)
			}
			if got.GuildID != 100 || got.UserID != 200 {
				t.Errorf("expected requester 200 in guild 100, got %+v", got)
			}
			if desc := embedOf(t, r).Description; desc != tt.wantReply {
				t.Errorf("expected %q, got %q", tt.wantReply, desc)
			}
		})
	}
}

func TestHandleSeek(t *testing.T) {
	var got usecases.SeekInput
	playback := &mockPlayback{
		seekFn: func(input usecases.SeekInput) error {
			got = input
			if input.Position > 5*time.Minute {
				return usecases.ErrSeekOutOfRange
			}
			return nil
		},
	}
	h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})

	tests := []struct {
		input string
		want  string
	}{
		{input: "1:30", want: "Jumped to 01:30."},
		{input: "0", want: "Jumped to the beginning."},
		{input: "10:00", want: "The timestamp is longer than the track itself."},
		{input: "abc", want: "Please enter a valid timestamp."},
	}

	for _, tt := range tests {
		r := &bot.MockResponder{}
		if err := h.HandleSeek(nil, newCommand("seek", stringOpt("position", tt.input)), r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if desc := embedOf(t, r).Description; desc != tt.want {
			t.Errorf("seek %q: expected %q, got %q", tt.input, tt.want, desc)
		}
	}

	if got.Position != 10*time.Minute {
		t.Errorf("expected last forwarded position 10m, got %v", got.Position)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "90", want: 90 * time.Second},
		{input: "1:30", want: 90 * time.Second},
		{input: "1:02:03", want: time.Hour + 2*time.Minute + 3*time.Second},
		{input: " 0:05 ", want: 5 * time.Second},
		{input: "1:60", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "1:2:3:4", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseTimestamp(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTimestamp(%q) = %v, expected %v", tt.input, got, tt.want)
		}
	}
}

func TestHandleVolume(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		current domain.Volume
		set     domain.Volume
		setErr  error
		want    string
	}{
		{name: "show current", current: 80, want: "I'm currently on **80** 🔉"},
		{name: "show muted", current: 0, want: "I'm currently **muted** 🔇"},
		{name: "set loud", value: "150", set: 150, want: "My volume is now set to **150** 🔊"},
		{name: "set earrape", value: "earrape", set: domain.EarrapeVolume, want: "My volume is now set to **EARRAPE** 🤯"},
		{name: "mute", value: "0", set: 0, want: "**Muted** 🔇"},
		{
			name:   "invalid",
			value:  "300",
			setErr: usecases.ErrInvalidVolume,
			want:   "Please enter a volume between 0 and 200, or earrape.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playback := &mockPlayback{
				getVolume: tt.current,
				setVolumeFn: func(input usecases.SetVolumeInput) (domain.Volume, error) {
					if input.Volume != tt.value {
						t.Errorf("expected volume %q, got %q", tt.value, input.Volume)
					}
					return tt.set, tt.setErr
				},
			}
			h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
			r := &bot.MockResponder{}

			var opts []*discordgo.ApplicationCommandInteractionDataOption
			if tt.value != "" {
				opts = append(opts, stringOpt("value", tt.value))
			}
			if err := h.HandleVolume(nil, newCommand("volume", opts...), r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc := embedOf(t, r).Description; desc != tt.want {
				t.Errorf("expected %q, got %q", tt.want, desc)
			}
		})
	}
}

func TestHandleFilter(t *testing.T) {
	var got usecases.SetFilterInput
	playback := &mockPlayback{
		setFilterFn: func(input usecases.SetFilterInput) (domain.Filter, error) {
			got = input
			return domain.ParseFilter(input.Name, input.Level)
		},
	}
	h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
	r := &bot.MockResponder{}

	err := h.HandleFilter(nil, newCommand("filter", stringOpt("name", "nightcore"), stringOpt("level", "high")), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "nightcore" || got.Level != "high" || got.UserID != 200 {
		t.Errorf("unexpected input %+v", got)
	}
	if desc := embedOf(t, r).Description; desc != "Applied **Nightcore (high)** filter." {
		t.Errorf("unexpected reply %q", desc)
	}
}

func TestHandleRepeat(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		err     error
		want    string
	}{
		{name: "on", enabled: true, want: "**Repeat on** ✅"},
		{name: "off", want: "**Repeat off** ❌"},
		{name: "livestream", err: usecases.ErrLiveStream, want: "I can't repeat a livestream."},
		{name: "store down", err: usecases.ErrPersistenceFailed, want: "Couldn't set repeat. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCommandHandlers(&mockPlayback{repeat: tt.enabled, guildErr: tt.err}, &mockStats{}, &mockLyrics{})
			r := &bot.MockResponder{}

			if err := h.HandleRepeat(nil, newCommand("repeat"), r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if desc := embedOf(t, r).Description; desc != tt.want {
				t.Errorf("expected %q, got %q", tt.want, desc)
			}
		})
	}
}

func TestHandleQueue(t *testing.T) {
	entries := make([]usecases.QueueEntry, 0, 12)
	for pos := 1; pos <= 12; pos++ {
		entries = append(entries, usecases.QueueEntry{Position: pos, Track: testTrack(fmt.Sprintf("t%d", pos))})
	}
	output := &usecases.QueueOutput{
		Current: testTrack("now"),
		State:   domain.StatePaused,
		Entries: entries,
		Total:   len(entries),
		Repeat:  true,
		Volume:  domain.StandardVolume,
		Filter:  domain.EmptyFilter(),
	}

	var got usecases.QueueInput
	playback := &mockPlayback{
		queueFn: func(input usecases.QueueInput) (*usecases.QueueOutput, error) {
			got = input
			return output, nil
		},
	}
	h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
	r := &bot.MockResponder{}

	if err := h.HandleQueue(nil, newCommand("queue", intOpt("page", 2)), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Limit != -1 {
		t.Errorf("expected the whole queue to be requested, got limit %d", got.Limit)
	}

	embed := embedOf(t, r)
	if embed.Title != "Queue 🔂" {
		t.Errorf("expected repeat indicator in title, got %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "[now](https://youtu.be/now) `03:00` ⏸️") {
		t.Errorf("expected paused current track, got %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "11\\. [t11]") || strings.Contains(embed.Description, "10\\. [t10]") {
		t.Errorf("expected only page 2 entries, got %q", embed.Description)
	}
	if !strings.HasPrefix(embed.Footer.Text, "Page 2/2 • 12 tracks") {
		t.Errorf("unexpected footer %q", embed.Footer.Text)
	}
}

func TestQueueEmbed_Empty(t *testing.T) {
	embed := queueEmbed(&usecases.QueueOutput{Filter: domain.EmptyFilter(), Volume: domain.StandardVolume}, 5)

	if embed.Description != "The queue is currently empty." {
		t.Errorf("unexpected description %q", embed.Description)
	}
	if !strings.HasPrefix(embed.Footer.Text, "Page 1/1") {
		t.Errorf("expected page to be clamped, got %q", embed.Footer.Text)
	}
}

func TestHandleTrackInfo(t *testing.T) {
	track := testTrack("a")
	track.RequesterID = 200
	track.ArtworkURL = "https://img.example/a.jpg"

	var got usecases.TrackInfoInput
	playback := &mockPlayback{
		trackInfoFn: func(input usecases.TrackInfoInput) (*domain.Track, error) {
			got = input
			return track, nil
		},
	}
	h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})
	r := &bot.MockResponder{}

	if err := h.HandleTrackInfo(nil, newCommand("trackinfo", intOpt("position", 3)), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Position != 3 {
		t.Errorf("expected position 3, got %d", got.Position)
	}

	embed := embedOf(t, r)
	if embed.Title != "a" || embed.URL != track.URI {
		t.Errorf("unexpected embed %+v", embed)
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL != track.ArtworkURL {
		t.Error("expected artwork thumbnail")
	}
	if last := embed.Fields[len(embed.Fields)-1]; last.Value != "<@200>" {
		t.Errorf("expected requester mention, got %q", last.Value)
	}
}

func TestHandleStats(t *testing.T) {
	h := NewCommandHandlers(&mockPlayback{}, &mockStats{output: &usecases.StatsOutput{}}, &mockLyrics{})
	r := &bot.MockResponder{}

	if err := h.HandleStats(nil, newCommand("stats"), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedOf(t, r).Title != "Error" {
		t.Error("expected an error before the first stats report")
	}

	h = NewCommandHandlers(&mockPlayback{}, &mockStats{output: &usecases.StatsOutput{
		HasNode:  true,
		Sessions: 2,
		Node: domain.NodeStats{
			Players:         3,
			PlayingPlayers:  1,
			Uptime:          90 * time.Minute,
			CPUCores:        4,
			SystemLoad:      0.25,
			LavalinkLoad:    0.05,
			MemoryUsed:      256 << 20,
			MemoryAllocated: 512 << 20,
		},
	}}, &mockLyrics{})
	r = &bot.MockResponder{}

	if err := h.HandleStats(nil, newCommand("stats"), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := embedOf(t, r).Fields
	want := []string{
		"3 (1 playing)",
		"2",
		"1h30m0s",
		"4 cores, system 25.0%, node 5.0%",
		"256 MiB used of 512 MiB allocated",
	}
	for idx, value := range want {
		if fields[idx].Value != value {
			t.Errorf("field %s: expected %q, got %q", fields[idx].Name, value, fields[idx].Value)
		}
	}
}

func TestSessionControls_DirectMessage(t *testing.T) {
	playback := &mockPlayback{}
	h := NewCommandHandlers(playback, &mockStats{}, &mockLyrics{})

	handlers := []bot.InteractionHandler{
		h.HandleStop, h.HandlePause, h.HandleSkip, h.HandleVolume, h.HandleRepeat, h.HandleFilter,
	}
	for _, handler := range handlers {
		i := newCommand("stop")
		i.GuildID = ""
		i.Member = nil
		i.User = &discordgo.User{ID: testUserID}
		r := &bot.MockResponder{}

		if err := handler(nil, i, r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if desc := embedOf(t, r).Description; desc != guildOnlyMessage {
			t.Errorf("expected guild-only reply, got %q", desc)
		}
	}
	if len(playback.calls) != 0 {
		t.Errorf("expected no playback calls, got %v", playback.calls)
	}
}

func TestHandleLyrics(t *testing.T) {
	track := testTrack("a")
	track.ArtworkURL = "https://img.example/a.jpg"

	tests := []struct {
		name      string
		output    *usecases.LyricsOutput
		err       error
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "found",
			output:    &usecases.LyricsOutput{Track: track, Lyrics: "la la la"},
			wantTitle: "Lyrics 📜",
			wantDesc:  "**a**\nla la la",
		},
		{
			name:      "not found",
			err:       usecases.ErrNoLyrics,
			wantTitle: "Error",
			wantDesc:  "No lyrics found!",
		},
		{
			name:      "not playing",
			err:       usecases.ErrNotPlaying,
			wantTitle: "Error",
			wantDesc:  "I'm not playing anything.",
		},
		{
			name:      "lookup failure",
			err:       fmt.Errorf("%w: %w", usecases.ErrLyricsUnavailable, errors.New("timeout")),
			wantTitle: "Error",
			wantDesc:  "Couldn't fetch lyrics. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lyrics := &mockLyrics{output: tt.output, err: tt.err}
			h := NewCommandHandlers(&mockPlayback{}, &mockStats{}, lyrics)
			r := &bot.MockResponder{}

			if err := h.HandleLyrics(nil, newCommand("lyrics"), r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.Deferred {
				t.Error("expected the reply to be deferred")
			}
			if lyrics.input.GuildID != 100 {
				t.Errorf("unexpected input %+v", lyrics.input)
			}

			embed := embedOf(t, r)
			if embed.Title != tt.wantTitle || embed.Description != tt.wantDesc {
				t.Errorf("unexpected embed %q: %q", embed.Title, embed.Description)
			}
		})
	}
}

func TestLyricsEmbed_Truncates(t *testing.T) {
	embed := lyricsEmbed(&usecases.LyricsOutput{
		Track:  testTrack("a"),
		Lyrics: strings.Repeat("ä", 5000),
	})

	if n := len([]rune(embed.Description)); n != maxEmbedDescription {
		t.Errorf("expected %d runes, got %d", maxEmbedDescription, n)
	}
	if !strings.HasSuffix(embed.Description, "…") {
		t.Error("expected an ellipsis on truncated lyrics")
	}
	if embed.Thumbnail != nil {
		t.Error("expected no thumbnail without artwork")
	}
}

func TestHandleLyrics_DirectMessage(t *testing.T) {
	lyrics := &mockLyrics{}
	h := NewCommandHandlers(&mockPlayback{}, &mockStats{}, lyrics)
	r := &bot.MockResponder{}

	i := newCommand("lyrics")
	i.GuildID = ""
	if err := h.HandleLyrics(nil, i, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedOf(t, r).Description != guildOnlyMessage {
		t.Error("expected the guild-only reply")
	}
	if r.Deferred {
		t.Error("expected no deferral outside a guild")
	}
}
