package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	TextChannelID snowflake.ID
	Query         string
	Source        domain.SearchSource // Catalog for bare search terms
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Tracks       []*domain.Track // Tracks the request acted on, in order
	PlaylistName string          // Set for playlist requests
	Started      bool            // True if Tracks[0] started playing immediately
	Position     int             // 1-based queue position of the first enqueued track
}

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID       snowflake.ID
	UserID        snowflake.ID
	TextChannelID snowflake.ID
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	VoiceChannelID snowflake.ID
	AlreadyJoined  bool
}

// ControlInput identifies a requester controlling a guild's session.
// The requester must share the session's voice channel.
type ControlInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
}

// SkipInput contains the input for the Skip use case.
type SkipInput struct {
	GuildID  snowflake.ID
	UserID   snowflake.ID
	Position int // Optional: 1-based queue position to drop instead of skipping
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	Skipped *domain.Track // Current track that was skipped, or the removed queue entry
	Next    *domain.Track // nil if playback stopped
	Removed bool          // True if a queue entry was removed by position
}

// PlaybackService runs user commands against a guild's session.
// Every command executes on the guild's lane, so commands never interleave
// with each other or with node callbacks for the same guild.
type PlaybackService struct {
	sessions    *SessionRegistry
	audioPlayer ports.AudioPlayer
	resolver    ports.TrackResolver
	voiceState  ports.VoiceStateProvider
	repeat      *RepeatMode
	executor    ports.GuildExecutor
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	sessions *SessionRegistry,
	audioPlayer ports.AudioPlayer,
	resolver ports.TrackResolver,
	voiceState ports.VoiceStateProvider,
	repeat *RepeatMode,
	executor ports.GuildExecutor,
) *PlaybackService {
	return &PlaybackService{
		sessions:    sessions,
		audioPlayer: audioPlayer,
		resolver:    resolver,
		voiceState:  voiceState,
		repeat:      repeat,
		executor:    executor,
	}
}

// Play resolves the query and either starts it or appends it to the queue.
func (p *PlaybackService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	var output *PlayOutput
	err := p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		var err error
		output, err = p.play(ctx, input)
		return err
	})
	return output, err
}

func (p *PlaybackService) play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	query, err := domain.ClassifyQuery(input.Query, input.Source)
	if err != nil {
		return nil, err
	}

	voiceChannelID, err := p.requesterChannel(input.GuildID, input.UserID)
	if err != nil {
		return nil, err
	}

	list, err := p.resolver.LoadTracks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: load tracks: %w", ErrNodeCommandFailed, err)
	}
	if list.IsEmpty() {
		return nil, ErrNoResults
	}

	selection := list.Selection()
	tracks := make([]*domain.Track, len(selection))
	for i, track := range selection {
		tracks[i] = track.RequestedBy(input.UserID)
	}

	session, created, err := p.sessions.GetOrCreate(
		ctx, input.GuildID, voiceChannelID, input.TextChannelID,
	)
	if err != nil {
		return nil, err
	}
	if session.VoiceChannelID != voiceChannelID {
		return nil, ErrWrongChannel
	}
	if input.TextChannelID != 0 {
		session.TextChannelID = input.TextChannelID
	}

	output := &PlayOutput{Tracks: tracks}
	if list.Type == domain.TrackListTypePlaylist {
		output.PlaylistName = list.Name
	}

	if !session.IsIdle() {
		session.Queue.EnqueueAll(tracks)
		output.Position = session.Queue.Len() - len(tracks) + 1
		return output, nil
	}

	first := tracks[0]
	if err := p.audioPlayer.Play(ctx, input.GuildID, first, 0); err != nil {
		if created {
			if removeErr := p.sessions.Remove(ctx, input.GuildID); removeErr != nil {
				slog.Warn("failed to remove session after play error",
					"guild", input.GuildID, "error", removeErr)
			}
		}
		return nil, fmt.Errorf("%w: play: %w", ErrNodeCommandFailed, err)
	}

	session.StartTrack(first)
	session.Queue.EnqueueAll(tracks[1:])
	output.Started = true
	if len(tracks) > 1 {
		output.Position = session.Queue.Len() - len(tracks) + 2
	}

	return output, nil
}

// Join connects the bot to the requester's voice channel.
func (p *PlaybackService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	var output *JoinOutput
	err := p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		voiceChannelID, err := p.requesterChannel(input.GuildID, input.UserID)
		if err != nil {
			return err
		}

		session, created, err := p.sessions.GetOrCreate(
			ctx, input.GuildID, voiceChannelID, input.TextChannelID,
		)
		if err != nil {
			return err
		}
		if session.VoiceChannelID != voiceChannelID {
			return ErrWrongChannel
		}

		output = &JoinOutput{VoiceChannelID: voiceChannelID, AlreadyJoined: !created}
		return nil
	})
	return output, err
}

// Leave disconnects the bot on the requester's behalf and discards the session.
func (p *PlaybackService) Leave(ctx context.Context, input ControlInput) error {
	return p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		if _, err := p.controlledSession(input.GuildID, input.UserID); err != nil {
			return err
		}

		p.repeat.Set(ctx, input.GuildID, false)
		return p.sessions.Remove(ctx, input.GuildID)
	})
}

// Disconnect discards the session after the bot lost its voice connection.
// It returns ErrNotConnected when no session exists.
func (p *PlaybackService) Disconnect(ctx context.Context, guildID snowflake.ID) error {
	return p.executor.Do(ctx, guildID, func(ctx context.Context) error {
		if p.sessions.TryGet(guildID) == nil {
			return ErrNotConnected
		}

		p.repeat.Set(ctx, guildID, false)
		return p.sessions.Remove(ctx, guildID)
	})
}

// Skip plays the next queued track, or stops when the queue is empty.
// With a position it drops that queue entry and leaves the current track alone.
// Repeat is cleared on every skip.
func (p *PlaybackService) Skip(ctx context.Context, input SkipInput) (*SkipOutput, error) {
	var output *SkipOutput
	err := p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		session, err := p.controlledSession(input.GuildID, input.UserID)
		if err != nil {
			return err
		}

		if input.Position != 0 {
			removed, ok := session.Queue.TryRemoveAt(input.Position)
			if !ok {
				return ErrInvalidPosition
			}
			output = &SkipOutput{Skipped: removed, Removed: true}
			return nil
		}

		if session.IsIdle() {
			return ErrNotPlaying
		}

		p.clearRepeat(ctx, session)
		skipped := session.Current()

		var next *domain.Track
		for _, track := range session.Queue.Peek(1) {
			next = track
		}

		if next == nil {
			if err := p.audioPlayer.Stop(ctx, input.GuildID); err != nil {
				slog.Warn("failed to stop player on skip", "guild", input.GuildID, "error", err)
			}
			output = &SkipOutput{Skipped: skipped}
			return p.sessions.Remove(ctx, input.GuildID)
		}

		// The node ends the current track as replaced, which is not acted on.
		if err := p.audioPlayer.Play(ctx, input.GuildID, next, 0); err != nil {
			return fmt.Errorf("%w: play: %w", ErrNodeCommandFailed, err)
		}
		session.Queue.TryDequeueFront()
		session.StartTrack(next)

		output = &SkipOutput{Skipped: skipped, Next: next}
		return nil
	})
	return output, err
}

// Stop clears repeat, stops playback and tears the session down.
func (p *PlaybackService) Stop(ctx context.Context, input ControlInput) error {
	guildID := input.GuildID
	return p.executor.Do(ctx, guildID, func(ctx context.Context) error {
		session, err := p.controlledSession(guildID, input.UserID)
		if err != nil {
			return err
		}

		p.clearRepeat(ctx, session)
		if err := p.audioPlayer.Stop(ctx, guildID); err != nil {
			slog.Warn("failed to stop player", "guild", guildID, "error", err)
		}
		return p.sessions.Remove(ctx, guildID)
	})
}

// Pause pauses the current playback.
func (p *PlaybackService) Pause(ctx context.Context, input ControlInput) error {
	guildID := input.GuildID
	return p.executor.Do(ctx, guildID, func(ctx context.Context) error {
		session, err := p.controlledSession(guildID, input.UserID)
		if err != nil {
			return err
		}

		switch session.State() {
		case domain.StateIdle:
			return ErrNotPlaying
		case domain.StatePaused:
			return ErrAlreadyPaused
		}

		if err := p.audioPlayer.Pause(ctx, guildID); err != nil {
			return fmt.Errorf("%w: pause: %w", ErrNodeCommandFailed, err)
		}
		session.Pause()
		return nil
	})
}

// Resume resumes the paused playback.
func (p *PlaybackService) Resume(ctx context.Context, input ControlInput) error {
	guildID := input.GuildID
	return p.executor.Do(ctx, guildID, func(ctx context.Context) error {
		session, err := p.controlledSession(guildID, input.UserID)
		if err != nil {
			return err
		}

		switch session.State() {
		case domain.StateIdle:
			return ErrNotPlaying
		case domain.StatePlaying:
			return ErrNotPaused
		}

		if err := p.audioPlayer.Resume(ctx, guildID); err != nil {
			return fmt.Errorf("%w: resume: %w", ErrNodeCommandFailed, err)
		}
		session.Resume()
		return nil
	})
}

func (p *PlaybackService) requesterChannel(guildID, userID snowflake.ID) (snowflake.ID, error) {
	channelID, err := p.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("get voice state: %w", err)
	}
	if channelID == nil {
		return 0, ErrUserNotInVoice
	}
	return *channelID, nil
}

// controlledSession returns the guild's session when the requester is in
// its voice channel. Checks run in order: requester in voice, session
// exists, same channel.
func (p *PlaybackService) controlledSession(guildID, userID snowflake.ID) (*domain.Session, error) {
	channelID, err := p.requesterChannel(guildID, userID)
	if err != nil {
		return nil, err
	}

	session := p.sessions.TryGet(guildID)
	if session == nil {
		return nil, ErrNotConnected
	}
	if session.VoiceChannelID != channelID {
		return nil, ErrWrongChannel
	}
	return session, nil
}

func (p *PlaybackService) clearRepeat(ctx context.Context, session *domain.Session) {
	if p.repeat.Set(ctx, session.GuildID, false) {
		session.SetRepeat(false)
	}
}
