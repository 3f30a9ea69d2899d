package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// SeekInput contains the input for the Seek use case.
type SeekInput struct {
	GuildID  snowflake.ID
	UserID   snowflake.ID
	Position time.Duration
}

// SetFilterInput contains the input for the SetFilter use case.
type SetFilterInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Name    string // nightcore, daycore, smoothing, 8d
	Level   string // low, medium, high, ultra; empty means medium
}

// SetVolumeInput contains the input for the SetVolume use case.
type SetVolumeInput struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	Volume  string // Percentage or the earrape keyword
}

// Seek moves the playhead of the current track.
func (p *PlaybackService) Seek(ctx context.Context, input SeekInput) error {
	return p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		session, err := p.controlledSession(input.GuildID, input.UserID)
		if err != nil {
			return err
		}

		current := session.Current()
		if current == nil {
			return ErrNotPlaying
		}
		if current.IsStream || !current.IsSeekable {
			return ErrNotSeekable
		}
		if input.Position < 0 || input.Position > current.Duration {
			return ErrSeekOutOfRange
		}

		if err := p.audioPlayer.Seek(ctx, input.GuildID, input.Position); err != nil {
			return fmt.Errorf("%w: seek: %w", ErrNodeCommandFailed, err)
		}
		return nil
	})
}

// SetFilter applies a preset, keeping the session's volume.
func (p *PlaybackService) SetFilter(ctx context.Context, input SetFilterInput) (domain.Filter, error) {
	filter, err := domain.ParseFilter(input.Name, input.Level)
	if err != nil {
		return domain.Filter{}, err
	}
	return filter, p.applyFilter(ctx, ControlInput{GuildID: input.GuildID, UserID: input.UserID}, filter)
}

// ResetFilter restores the unity filter.
func (p *PlaybackService) ResetFilter(ctx context.Context, input ControlInput) error {
	return p.applyFilter(ctx, input, domain.EmptyFilter())
}

func (p *PlaybackService) applyFilter(ctx context.Context, input ControlInput, filter domain.Filter) error {
	guildID := input.GuildID
	return p.executor.Do(ctx, guildID, func(ctx context.Context) error {
		session, err := p.controlledSession(guildID, input.UserID)
		if err != nil {
			return err
		}

		if err := p.audioPlayer.ApplyFilter(ctx, guildID, filter, session.Volume()); err != nil {
			return fmt.Errorf("%w: apply filter: %w", ErrNodeCommandFailed, err)
		}
		session.SetFilter(filter)
		return nil
	})
}

// SetVolume validates and applies a volume, keeping the active filter.
func (p *PlaybackService) SetVolume(ctx context.Context, input SetVolumeInput) (domain.Volume, error) {
	volume, err := domain.ParseVolume(input.Volume)
	if err != nil {
		return 0, err
	}

	err = p.executor.Do(ctx, input.GuildID, func(ctx context.Context) error {
		session, err := p.controlledSession(input.GuildID, input.UserID)
		if err != nil {
			return err
		}

		if err := p.audioPlayer.ApplyFilter(ctx, input.GuildID, session.Filter(), volume); err != nil {
			return fmt.Errorf("%w: apply volume: %w", ErrNodeCommandFailed, err)
		}
		session.SetVolume(volume)
		p.sessions.RememberVolume(input.GuildID, volume)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return volume, nil
}

// GetVolume returns the session's volume.
func (p *PlaybackService) GetVolume(ctx context.Context, input ControlInput) (domain.Volume, error) {
	var volume domain.Volume
	err := p.executor.Do(ctx, input.GuildID, func(context.Context) error {
		session, err := p.controlledSession(input.GuildID, input.UserID)
		if err != nil {
			return err
		}
		volume = session.Volume()
		return nil
	})
	return volume, err
}

// ToggleRepeat flips the guild's persisted repeat flag and returns the new value.
// The session mirror only changes once the store accepted the write.
func (p *PlaybackService) ToggleRepeat(ctx context.Context, input ControlInput) (bool, error) {
	guildID := input.GuildID
	var enabled bool
	err := p.executor.Do(ctx, guildID, func(ctx context.Context) error {
		session, err := p.controlledSession(guildID, input.UserID)
		if err != nil {
			return err
		}

		current := session.Current()
		if current == nil {
			return ErrNotPlaying
		}
		if current.IsStream {
			return ErrLiveStream
		}

		enabled = !p.repeat.Get(ctx, guildID)
		if !p.repeat.Set(ctx, guildID, enabled) {
			return ErrPersistenceFailed
		}
		session.SetRepeat(enabled)
		return nil
	})
	return enabled, err
}
