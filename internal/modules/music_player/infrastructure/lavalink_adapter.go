package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// voiceConnectionTimeout is the maximum time to wait for voice connection to be established.
const voiceConnectionTimeout = 10 * time.Second

var errNoNode = errors.New("no available Lavalink node")

// LavalinkAdapter wraps DisGoLink to implement the node-facing ports.
type LavalinkAdapter struct {
	link    disgolink.Client
	session *discordgo.Session
	botID   snowflake.ID

	voiceMu    sync.Mutex
	handshakes map[snowflake.ID]*voiceHandshake

	publisher ports.EventPublisher
}

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
	Secure   bool
}

// NewLavalinkAdapter creates a new LavalinkAdapter and connects the node.
func NewLavalinkAdapter(
	ctx context.Context,
	session *discordgo.Session,
	config LavalinkConfig,
) (*LavalinkAdapter, error) {
	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	adapter := &LavalinkAdapter{
		session:    session,
		botID:      botID,
		handshakes: make(map[snowflake.ID]*voiceHandshake),
	}

	adapter.link = disgolink.New(botID,
		disgolink.WithListenerFunc(adapter.onTrackStart),
		disgolink.WithListenerFunc(adapter.onTrackEnd),
		disgolink.WithListenerFunc(adapter.onTrackException),
		disgolink.WithListenerFunc(adapter.onTrackStuck),
		disgolink.WithListenerFunc(adapter.onWebSocketClosed),
	)

	node, err := adapter.link.AddNode(ctx, disgolink.NodeConfig{
		Name:     "main",
		Address:  config.Address,
		Password: config.Password,
		Secure:   config.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return adapter, nil
}

// SetEventPublisher sets where node callbacks are published.
func (c *LavalinkAdapter) SetEventPublisher(publisher ports.EventPublisher) {
	c.publisher = publisher
}

// Close disconnects from all nodes.
func (c *LavalinkAdapter) Close() {
	c.link.Close()
}

// JoinChannel connects to a voice channel.
// It waits until both halves of the voice handshake were forwarded to the node.
func (c *LavalinkAdapter) JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error {
	ready := make(chan struct{})

	c.voiceMu.Lock()
	c.handshake(guildID).ready = ready
	c.voiceMu.Unlock()

	defer func() {
		c.voiceMu.Lock()
		if h, ok := c.handshakes[guildID]; ok && h.ready == ready {
			h.ready = nil
		}
		c.voiceMu.Unlock()
	}()

	err := c.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	timer := time.NewTimer(voiceConnectionTimeout)
	defer timer.Stop()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-timer.C:
		return fmt.Errorf("timeout waiting for voice connection")
	}
}

// LeaveChannel destroys the guild's player and disconnects from voice.
func (c *LavalinkAdapter) LeaveChannel(ctx context.Context, guildID snowflake.ID) error {
	if player := c.link.ExistingPlayer(guildID); player != nil {
		if err := player.Destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild", guildID, "error", err)
		}
	}

	c.voiceMu.Lock()
	delete(c.handshakes, guildID)
	c.voiceMu.Unlock()

	err := c.session.ChannelVoiceJoinManual(guildID.String(), "", false, false)
	if err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// Play loads the track into the player, starting at startAt.
func (c *LavalinkAdapter) Play(
	ctx context.Context,
	guildID snowflake.ID,
	track *domain.Track,
	startAt time.Duration,
) error {
	// Use WithEncodedTrack to avoid userData:null issue
	opts := []lavalink.PlayerUpdateOpt{lavalink.WithEncodedTrack(track.Encoded), lavalink.WithPaused(false)}
	if startAt > 0 {
		opts = append(opts, lavalink.WithPosition(toLavalinkDuration(startAt)))
	}

	if err := c.link.Player(guildID).Update(ctx, opts...); err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}
	return nil
}

// Stop stops the current playback.
func (c *LavalinkAdapter) Stop(ctx context.Context, guildID snowflake.ID) error {
	if err := c.link.Player(guildID).Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}
	return nil
}

// Pause pauses the current playback.
func (c *LavalinkAdapter) Pause(ctx context.Context, guildID snowflake.ID) error {
	if err := c.link.Player(guildID).Update(ctx, lavalink.WithPaused(true)); err != nil {
		return fmt.Errorf("failed to pause playback: %w", err)
	}
	return nil
}

// Resume resumes the current playback.
func (c *LavalinkAdapter) Resume(ctx context.Context, guildID snowflake.ID) error {
	if err := c.link.Player(guildID).Update(ctx, lavalink.WithPaused(false)); err != nil {
		return fmt.Errorf("failed to resume playback: %w", err)
	}
	return nil
}

// Seek moves the playhead of the current track.
func (c *LavalinkAdapter) Seek(ctx context.Context, guildID snowflake.ID, position time.Duration) error {
	err := c.link.Player(guildID).Update(ctx, lavalink.WithPosition(toLavalinkDuration(position)))
	if err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

// ApplyFilter replaces the player's filters. Volume travels as a filter multiplier.
func (c *LavalinkAdapter) ApplyFilter(
	ctx context.Context,
	guildID snowflake.ID,
	filter domain.Filter,
	volume domain.Volume,
) error {
	err := c.link.Player(guildID).Update(ctx, lavalink.WithFilters(toLavalinkFilters(filter, volume)))
	if err != nil {
		return fmt.Errorf("failed to apply filters: %w", err)
	}
	return nil
}

func toLavalinkFilters(filter domain.Filter, volume domain.Volume) lavalink.Filters {
	v := lavalink.Volume(volume.Multiplier())
	filters := lavalink.Filters{
		Volume: &v,
		Timescale: &lavalink.Timescale{
			Speed: filter.Timescale.Speed,
			Pitch: filter.Timescale.Pitch,
			Rate:  filter.Timescale.Rate,
		},
	}
	if filter.LowPass > 0 {
		filters.LowPass = &lavalink.LowPass{Smoothing: filter.LowPass}
	}
	if filter.RotationHz > 0 {
		filters.Rotation = &lavalink.Rotation{RotationHz: filter.RotationHz}
	}
	return filters
}

// LoadTracks resolves a classified query on the best node.
func (c *LavalinkAdapter) LoadTracks(
	ctx context.Context,
	query domain.SearchQuery,
) (*domain.TrackList, error) {
	node := c.link.BestNode()
	if node == nil {
		return nil, errNoNode
	}

	result, err := node.LoadTracks(ctx, query.Identifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}

	return convertLoadResult(result)
}

func convertLoadResult(result *lavalink.LoadResult) (*domain.TrackList, error) {
	switch data := result.Data.(type) {
	case lavalink.Track:
		return &domain.TrackList{
			Type:   domain.TrackListTypeTrack,
			Tracks: []*domain.Track{convertTrack(data)},
		}, nil

	case lavalink.Playlist:
		return &domain.TrackList{
			Type:   domain.TrackListTypePlaylist,
			Name:   data.Info.Name,
			Tracks: convertTracks(data.Tracks),
		}, nil

	case lavalink.Search:
		return &domain.TrackList{
			Type:   domain.TrackListTypeSearch,
			Tracks: convertTracks(data),
		}, nil

	case lavalink.Exception:
		return nil, fmt.Errorf("failed to load tracks: %s", data.Message)

	default:
		return &domain.TrackList{Type: domain.TrackListTypeSearch}, nil
	}
}

func convertTracks(tracks []lavalink.Track) []*domain.Track {
	converted := make([]*domain.Track, len(tracks))
	for i, track := range tracks {
		converted[i] = convertTrack(track)
	}
	return converted
}

func convertTrack(track lavalink.Track) *domain.Track {
	info := track.Info

	return &domain.Track{
		Identifier: info.Identifier,
		Encoded:    track.Encoded,
		Title:      info.Title,
		Artist:     info.Author,
		Duration:   time.Duration(info.Length) * time.Millisecond,
		URI:        derefString(info.URI),
		ArtworkURL: derefString(info.ArtworkURL),
		SourceName: info.SourceName,
		IsStream:   info.IsStream,
		IsSeekable: info.IsSeekable,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toLavalinkDuration(d time.Duration) lavalink.Duration {
	return lavalink.Duration(d.Milliseconds())
}

// RunStatsPoller publishes the best node's stats every interval until ctx is done.
func (c *LavalinkAdapter) RunStatsPoller(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			node := c.link.BestNode()
			if node == nil {
				continue
			}
			c.publish(domain.NodeStatsEvent{Stats: convertStats(node.Stats())})
		}
	}
}

func convertStats(stats lavalink.Stats) domain.NodeStats {
	return domain.NodeStats{
		Players:          stats.Players,
		PlayingPlayers:   stats.PlayingPlayers,
		Uptime:           time.Duration(stats.Uptime) * time.Millisecond,
		CPUCores:         stats.CPU.Cores,
		SystemLoad:       stats.CPU.SystemLoad,
		LavalinkLoad:     stats.CPU.LavalinkLoad,
		MemoryFree:       int64(stats.Memory.Free),
		MemoryUsed:       int64(stats.Memory.Used),
		MemoryAllocated:  int64(stats.Memory.Allocated),
		MemoryReservable: int64(stats.Memory.Reservable),
	}
}

// OnVoiceServerUpdate handles Discord voice server updates.
// This must be called from the Discord event handler.
func (c *LavalinkAdapter) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	c.voiceMu.Lock()
	h := c.handshake(guildID)
	h.setServer(event.Token, event.Endpoint)
	update, ok := h.take()
	c.voiceMu.Unlock()

	if ok {
		c.forwardVoiceUpdate(guildID, update)
	}
}

// OnVoiceStateUpdate handles Discord voice state updates for the bot itself.
// This must be called from the Discord event handler.
func (c *LavalinkAdapter) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	if event.UserID != c.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	// Disconnects need no server half.
	if event.ChannelID == "" {
		c.voiceMu.Lock()
		delete(c.handshakes, guildID)
		c.voiceMu.Unlock()

		c.link.OnVoiceStateUpdate(context.Background(), guildID, nil, event.SessionID)
		return
	}

	channelID, err := snowflake.Parse(event.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in voice state update", "error", err)
		return
	}

	c.voiceMu.Lock()
	h := c.handshake(guildID)
	h.setState(&channelID, event.SessionID)
	update, ok := h.take()
	c.voiceMu.Unlock()

	if ok {
		c.forwardVoiceUpdate(guildID, update)
	}
}

// handshake returns the guild's handshake, creating one if needed.
// Must be called with voiceMu held.
func (c *LavalinkAdapter) handshake(guildID snowflake.ID) *voiceHandshake {
	h, ok := c.handshakes[guildID]
	if !ok {
		h = &voiceHandshake{}
		c.handshakes[guildID] = h
	}
	return h
}

func (c *LavalinkAdapter) forwardVoiceUpdate(guildID snowflake.ID, update voiceUpdate) {
	slog.Debug("forwarding voice handshake to Lavalink",
		"guild", guildID,
		"channel", update.channelID,
		"hasSessionID", update.sessionID != "",
	)

	c.link.OnVoiceStateUpdate(context.Background(), guildID, update.channelID, update.sessionID)
	c.link.OnVoiceServerUpdate(context.Background(), guildID, update.token, update.endpoint)
}

func (c *LavalinkAdapter) publish(event domain.Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(event); err != nil {
		slog.Warn("failed to publish node event",
			"guild", event.Guild(),
			"event", event.Kind(),
			"error", err,
		)
	}
}

func (c *LavalinkAdapter) onTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild", player.GuildID(), "track", event.Track.Info.Title)

	c.publish(domain.TrackStartedEvent{
		GuildID: player.GuildID(),
		Track:   convertTrack(event.Track),
	})
}

func (c *LavalinkAdapter) onTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild", player.GuildID(), "reason", event.Reason)

	c.publish(domain.TrackEndedEvent{
		GuildID: player.GuildID(),
		Track:   convertTrack(event.Track),
		Reason:  convertEndReason(event.Reason),
	})
}

func (c *LavalinkAdapter) onTrackException(
	player disgolink.Player,
	event lavalink.TrackExceptionEvent,
) {
	slog.Warn("track exception", "guild", player.GuildID(), "error", event.Exception.Message)

	c.publish(domain.TrackExceptionEvent{
		GuildID:  player.GuildID(),
		Track:    convertTrack(event.Track),
		Message:  event.Exception.Message,
		Severity: string(event.Exception.Severity),
	})
}

func (c *LavalinkAdapter) onTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild", player.GuildID(), "threshold", event.Threshold)

	c.publish(domain.TrackStuckEvent{
		GuildID:   player.GuildID(),
		Track:     convertTrack(event.Track),
		Threshold: time.Duration(event.Threshold) * time.Millisecond,
	})
}

func (c *LavalinkAdapter) onWebSocketClosed(
	player disgolink.Player,
	event lavalink.WebSocketClosedEvent,
) {
	slog.Warn("voice websocket closed",
		"guild", player.GuildID(),
		"code", event.Code,
		"reason", event.Reason,
		"byRemote", event.ByRemote,
	)

	c.publish(domain.TransportClosedEvent{
		GuildID:  player.GuildID(),
		Code:     event.Code,
		Reason:   event.Reason,
		ByRemote: event.ByRemote,
	})
}

func convertEndReason(reason lavalink.TrackEndReason) domain.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return domain.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return domain.TrackEndLoadFailed
	case lavalink.TrackEndReasonStopped:
		return domain.TrackEndStopped
	case lavalink.TrackEndReasonReplaced:
		return domain.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return domain.TrackEndCleanup
	default:
		return domain.TrackEndStopped
	}
}

// Ensure LavalinkAdapter implements port interfaces.
var (
	_ ports.AudioPlayer     = (*LavalinkAdapter)(nil)
	_ ports.VoiceConnection = (*LavalinkAdapter)(nil)
	_ ports.TrackResolver   = (*LavalinkAdapter)(nil)
)
