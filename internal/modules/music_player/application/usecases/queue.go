package usecases

import (
	"context"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// QueueInput contains the input for the Queue use case.
type QueueInput struct {
	GuildID snowflake.ID
	Limit   int // Max entries to return; negative returns all
}

// QueueEntry is a queued track with its 1-based position.
type QueueEntry struct {
	Position int
	Track    *domain.Track
}

// QueueOutput is a snapshot of a session's queue.
type QueueOutput struct {
	Current  *domain.Track
	State    domain.PlaybackState
	Entries  []QueueEntry
	Total    int
	Duration time.Duration // Sum of queued non-stream tracks
	Repeat   bool
	Volume   domain.Volume
	Filter   domain.Filter
}

// TrackInfoInput contains the input for the TrackInfo use case.
type TrackInfoInput struct {
	GuildID  snowflake.ID
	Position int // 0 means the current track
}

// Queue returns a snapshot of the guild's queue.
func (p *PlaybackService) Queue(ctx context.Context, input QueueInput) (*QueueOutput, error) {
	var output *QueueOutput
	err := p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		session := p.sessions.TryGet(input.GuildID)
		if session == nil {
			return ErrNotConnected
		}

		output = &QueueOutput{
			Current:  session.Current(),
			State:    session.State(),
			Total:    session.Queue.Len(),
			Duration: session.Queue.Duration(),
			Repeat:   session.Repeat(),
			Volume:   session.Volume(),
			Filter:   session.Filter(),
		}
		for position, track := range session.Queue.Peek(input.Limit) {
			output.Entries = append(output.Entries, QueueEntry{Position: position, Track: track})
		}
		return nil
	})
	return output, err
}

// Shuffle randomizes the order of the queued tracks.
func (p *PlaybackService) Shuffle(ctx context.Context, input ControlInput) error {
	return p.executor.Do(ctx, input.GuildID, func(context.Context) error {
		session, err := p.controlledSession(input.GuildID, input.UserID)
		if err != nil {
			return err
		}
		if session.Queue.Len() <= 1 {
			return ErrNothingToShuffle
		}

		session.Queue.Shuffle()
		return nil
	})
}

// TrackInfo returns the current track or the queue entry at a position.
func (p *PlaybackService) TrackInfo(ctx context.Context, input TrackInfoInput) (*domain.Track, error) {
	var track *domain.Track
	err := p.executor.Do(ctx, input.GuildID, func(context.Context) error {
		session := p.sessions.TryGet(input.GuildID)
		if session == nil {
			return ErrNotConnected
		}

		if input.Position == 0 {
			if session.Current() == nil {
				return ErrNotPlaying
			}
			track = session.Current()
			return nil
		}

		if input.Position < 0 || input.Position > session.Queue.Len() {
			return ErrInvalidPosition
		}
		for position, queued := range session.Queue.Peek(input.Position) {
			if position == input.Position {
				track = queued
			}
		}
		return nil
	})
	return track, err
}
