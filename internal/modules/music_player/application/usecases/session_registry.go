package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

const leaveTimeout = 5 * time.Second

// SessionRegistry owns the live session of every guild.
// Callers must hold the guild's lane while using a returned session.
type SessionRegistry struct {
	repo            domain.SessionRepository
	voiceConnection ports.VoiceConnection
	audioPlayer     ports.AudioPlayer

	mu         sync.Mutex
	lastVolume map[snowflake.ID]domain.Volume
}

// NewSessionRegistry creates a new SessionRegistry.
func NewSessionRegistry(
	repo domain.SessionRepository,
	voiceConnection ports.VoiceConnection,
	audioPlayer ports.AudioPlayer,
) *SessionRegistry {
	return &SessionRegistry{
		repo:            repo,
		voiceConnection: voiceConnection,
		audioPlayer:     audioPlayer,
		lastVolume:      make(map[snowflake.ID]domain.Volume),
	}
}

// TryGet returns the guild's session, or nil if none exists.
func (r *SessionRegistry) TryGet(guildID snowflake.ID) *domain.Session {
	return r.repo.Get(guildID)
}

// GetOrCreate returns the guild's session, creating it when absent.
// An existing session is returned unchanged even if its channels differ from
// the request. A new session joins voiceChannelID and starts with the unity
// filter at the guild's last-known volume. created reports whether this call
// made the session. On failure no session is registered.
func (r *SessionRegistry) GetOrCreate(
	ctx context.Context,
	guildID, voiceChannelID, textChannelID snowflake.ID,
) (session *domain.Session, created bool, err error) {
	if session := r.repo.Get(guildID); session != nil {
		return session, false, nil
	}

	// The gateway join may have gone through even when the handshake failed.
	if err := r.voiceConnection.JoinChannel(ctx, guildID, voiceChannelID); err != nil {
		r.leaveAfterFailure(guildID, "join")
		return nil, false, fmt.Errorf("%w: join voice channel: %w", ErrNodeCommandFailed, err)
	}

	volume := r.LastVolume(guildID)
	if err := r.audioPlayer.ApplyFilter(ctx, guildID, domain.EmptyFilter(), volume); err != nil {
		r.leaveAfterFailure(guildID, "filter")
		return nil, false, fmt.Errorf("%w: apply filter: %w", ErrNodeCommandFailed, err)
	}

	session = domain.NewSession(guildID, voiceChannelID, textChannelID, volume)
	r.repo.Save(session)

	slog.Info("session created", "guild", guildID, "channel", voiceChannelID)
	return session, true, nil
}

// Remove leaves the voice channel and forgets the guild's session.
// It is a no-op when no session exists. The session is forgotten even if
// leaving fails.
func (r *SessionRegistry) Remove(ctx context.Context, guildID snowflake.ID) error {
	session := r.repo.Get(guildID)
	if session == nil {
		return nil
	}

	r.RememberVolume(guildID, session.Volume())
	session.Queue.Clear()
	session.Idle()
	r.repo.Delete(guildID)

	slog.Info("session removed", "guild", guildID)

	if err := r.voiceConnection.LeaveChannel(ctx, guildID); err != nil {
		return fmt.Errorf("%w: leave voice channel: %w", ErrNodeCommandFailed, err)
	}
	return nil
}

// leaveAfterFailure disconnects a half-created session. It does not use the
// caller's context, which may be the reason the creation failed.
func (r *SessionRegistry) leaveAfterFailure(guildID snowflake.ID, step string) {
	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()

	if err := r.voiceConnection.LeaveChannel(ctx, guildID); err != nil {
		slog.Warn("failed to leave after failed session creation", "guild", guildID, "step", step, "error", err)
	}
}

// LastVolume returns the volume the guild last used, or the standard volume.
func (r *SessionRegistry) LastVolume(guildID snowflake.ID) domain.Volume {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.lastVolume[guildID]; ok {
		return v
	}
	return domain.StandardVolume
}

// RememberVolume records the guild's volume for future sessions.
func (r *SessionRegistry) RememberVolume(guildID snowflake.ID, volume domain.Volume) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastVolume[guildID] = volume
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	return r.repo.Count()
}
