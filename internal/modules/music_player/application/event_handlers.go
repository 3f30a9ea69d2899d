package application

import (
	"context"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

type eventHandler func(ctx context.Context, event domain.Event)

// PlaybackEventHandler reacts to node callbacks: it announces tracks, replays
// on repeat, advances the queue and tears sessions down.
// Callbacks for one guild arrive on the guild's lane in emission order.
type PlaybackEventHandler struct {
	sessions   *usecases.SessionRegistry
	player     ports.AudioPlayer
	repeat     *usecases.RepeatMode
	notifier   ports.NotificationSender
	stats      ports.NodeStatsSink
	subscriber ports.EventSubscriber
}

// NewPlaybackEventHandler creates a new PlaybackEventHandler.
func NewPlaybackEventHandler(
	sessions *usecases.SessionRegistry,
	player ports.AudioPlayer,
	repeat *usecases.RepeatMode,
	notifier ports.NotificationSender,
	stats ports.NodeStatsSink,
	subscriber ports.EventSubscriber,
) *PlaybackEventHandler {
	return &PlaybackEventHandler{
		sessions:   sessions,
		player:     player,
		repeat:     repeat,
		notifier:   notifier,
		stats:      stats,
		subscriber: subscriber,
	}
}

// Start registers the dispatch table with the subscriber.
func (h *PlaybackEventHandler) Start() error {
	table := map[domain.EventKind]eventHandler{
		domain.EventTrackStarted: func(ctx context.Context, e domain.Event) {
			h.handleTrackStarted(ctx, e.(domain.TrackStartedEvent))
		},
		domain.EventTrackEnded: func(ctx context.Context, e domain.Event) {
			h.handleTrackEnded(ctx, e.(domain.TrackEndedEvent))
		},
		domain.EventTrackStuck: func(ctx context.Context, e domain.Event) {
			h.handleTrackStuck(ctx, e.(domain.TrackStuckEvent))
		},
		domain.EventTrackException: func(ctx context.Context, e domain.Event) {
			h.handleTrackException(ctx, e.(domain.TrackExceptionEvent))
		},
		domain.EventTransportClosed: func(ctx context.Context, e domain.Event) {
			h.handleTransportClosed(ctx, e.(domain.TransportClosedEvent))
		},
		domain.EventNodeStats: func(_ context.Context, e domain.Event) {
			h.stats.Record(e.(domain.NodeStatsEvent).Stats)
		},
	}

	for kind, handler := range table {
		if err := h.subscriber.Subscribe(kind, handler); err != nil {
			return err
		}
	}

	slog.Debug("playback event handlers properly registered", "count", len(table))

	return nil
}

// currentSession returns the guild's session if track is still its current
// track. Callbacks for any other track are stale.
func (h *PlaybackEventHandler) currentSession(
	guildID snowflake.ID,
	track *domain.Track,
	kind domain.EventKind,
) *domain.Session {
	session := h.sessions.TryGet(guildID)
	if session == nil {
		slog.Debug("no session for event, skipping", "guild", guildID, "event", kind)
		return nil
	}
	if !session.IsCurrent(track) {
		slog.Debug("stale event, skipping", "guild", guildID, "event", kind)
		return nil
	}
	return session
}

func (h *PlaybackEventHandler) handleTrackStarted(ctx context.Context, event domain.TrackStartedEvent) {
	session := h.currentSession(event.GuildID, event.Track, event.Kind())
	if session == nil {
		return
	}

	repeat := h.repeat.Get(ctx, event.GuildID)
	session.SetRepeat(repeat)

	var err error
	if repeat {
		err = h.notifier.SendRepeated(session.TextChannelID, session.Current())
	} else {
		err = h.notifier.SendNowPlaying(session.TextChannelID, session.Current())
	}
	if err != nil {
		slog.Error("failed to send now playing notification", "guild", event.GuildID, "error", err)
	}
}

func (h *PlaybackEventHandler) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	if event.Reason == domain.TrackEndReplaced {
		return
	}

	// A failed track was already advanced past when its exception arrived.
	if event.Reason == domain.TrackEndLoadFailed {
		if session := h.sessions.TryGet(event.GuildID); session != nil && session.ConsumeFailedEnd(event.Track) {
			slog.Debug("failed track already handled, skipping", "guild", event.GuildID)
			return
		}
	}

	session := h.currentSession(event.GuildID, event.Track, event.Kind())
	if session == nil {
		return
	}

	slog.Debug("track ended", "guild", event.GuildID, "reason", event.Reason)

	switch event.Reason {
	case domain.TrackEndFinished:
		if h.repeat.Get(ctx, event.GuildID) {
			h.replay(ctx, session)
			return
		}
		h.advanceOrComplete(ctx, session, event.Reason)

	case domain.TrackEndStopped:
		if err := h.notifier.SendStopped(session.TextChannelID); err != nil {
			slog.Error("failed to send stopped notification", "guild", event.GuildID, "error", err)
		}
		h.teardown(ctx, event.GuildID)

	default:
		h.advanceOrComplete(ctx, session, event.Reason)
	}
}

func (h *PlaybackEventHandler) handleTrackStuck(ctx context.Context, event domain.TrackStuckEvent) {
	h.disableRepeat(ctx, event.GuildID)

	session := h.currentSession(event.GuildID, event.Track, event.Kind())
	if session == nil {
		return
	}

	if err := h.notifier.SendStuck(session.TextChannelID, session.Current(), event.Threshold); err != nil {
		slog.Error("failed to send stuck notification", "guild", event.GuildID, "error", err)
	}
	h.advanceOrComplete(ctx, session, domain.TrackEndStuck)
}

func (h *PlaybackEventHandler) handleTrackException(ctx context.Context, event domain.TrackExceptionEvent) {
	h.disableRepeat(ctx, event.GuildID)

	session := h.currentSession(event.GuildID, event.Track, event.Kind())
	if session == nil {
		return
	}

	err := h.notifier.SendException(session.TextChannelID, session.Current(), event.Message)
	if err != nil {
		slog.Error("failed to send exception notification", "guild", event.GuildID, "error", err)
	}
	session.MarkFailed(session.Current())
	h.advanceOrComplete(ctx, session, domain.TrackEndException)
}

func (h *PlaybackEventHandler) handleTransportClosed(ctx context.Context, event domain.TransportClosedEvent) {
	slog.Info("voice transport closed",
		"guild", event.GuildID,
		"code", event.Code,
		"reason", event.Reason,
		"by_remote", event.ByRemote,
	)

	h.disableRepeat(ctx, event.GuildID)
	h.teardown(ctx, event.GuildID)
}

// advanceOrComplete starts the next queued track, or completes the queue and
// tears the session down when nothing is left.
func (h *PlaybackEventHandler) advanceOrComplete(
	ctx context.Context,
	session *domain.Session,
	reason domain.TrackEndReason,
) {
	guildID := session.GuildID

	next, ok := session.Queue.TryDequeueFront()
	if !ok {
		slog.Debug("queue completed", "guild", guildID, "reason", reason)
		if err := h.notifier.SendQueueCompleted(session.TextChannelID); err != nil {
			slog.Error("failed to send queue completed notification", "guild", guildID, "error", err)
		}
		h.teardown(ctx, guildID)
		return
	}

	if !next.IsValid() {
		slog.Warn("next queue slot is not a track", "guild", guildID, "reason", reason)
		if err := h.notifier.SendInvalidTrack(session.TextChannelID); err != nil {
			slog.Error("failed to send invalid track notification", "guild", guildID, "error", err)
		}
		session.Idle()
		return
	}

	if err := h.player.Play(ctx, guildID, next, 0); err != nil {
		slog.Error("failed to start next track", "guild", guildID, "reason", reason, "error", err)
		if err := h.notifier.SendError(session.TextChannelID, "Couldn't play "+next.Title); err != nil {
			slog.Error("failed to send error notification", "guild", guildID, "error", err)
		}
		session.Idle()
		return
	}

	session.StartTrack(next)
}

func (h *PlaybackEventHandler) replay(ctx context.Context, session *domain.Session) {
	current := session.Current()
	if err := h.player.Play(ctx, session.GuildID, current, 0); err != nil {
		slog.Error("failed to replay track", "guild", session.GuildID, "error", err)
		h.advanceOrComplete(ctx, session, domain.TrackEndFinished)
		return
	}
	session.StartTrack(current)
}

func (h *PlaybackEventHandler) disableRepeat(ctx context.Context, guildID snowflake.ID) {
	if !h.repeat.Set(ctx, guildID, false) {
		return
	}
	if session := h.sessions.TryGet(guildID); session != nil {
		session.SetRepeat(false)
	}
}

func (h *PlaybackEventHandler) teardown(ctx context.Context, guildID snowflake.ID) {
	if err := h.sessions.Remove(ctx, guildID); err != nil {
		slog.Warn("failed to tear down session", "guild", guildID, "error", err)
	}
}
