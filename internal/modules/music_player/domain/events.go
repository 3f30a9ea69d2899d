package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// EventKind identifies a node lifecycle callback.
type EventKind int

const (
	EventTrackStarted EventKind = iota
	EventTrackEnded
	EventTrackStuck
	EventTrackException
	EventTransportClosed
	EventNodeStats
)

// String returns a human-readable representation of the kind.
func (k EventKind) String() string {
	switch k {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventTrackStuck:
		return "track_stuck"
	case EventTrackException:
		return "track_exception"
	case EventTransportClosed:
		return "transport_closed"
	case EventNodeStats:
		return "node_stats"
	default:
		return "unknown"
	}
}

// Event is a callback emitted by the audio node.
type Event interface {
	Kind() EventKind
	// Guild returns the guild the event belongs to, or 0 for node-wide events.
	Guild() snowflake.ID
}

// TrackEndReason represents why a track ended.
type TrackEndReason string

const (
	// TrackEndFinished means the track played to the end.
	TrackEndFinished TrackEndReason = "finished"
	// TrackEndLoadFailed means the node could not load the track.
	TrackEndLoadFailed TrackEndReason = "load_failed"
	// TrackEndStopped means the track was stopped explicitly.
	TrackEndStopped TrackEndReason = "stopped"
	// TrackEndReplaced means another play command took over the player.
	TrackEndReplaced TrackEndReason = "replaced"
	// TrackEndCleanup means the node cleaned the player up.
	TrackEndCleanup TrackEndReason = "cleanup"
	// TrackEndStuck and TrackEndException are synthesized from the
	// corresponding events to drive the shared advance path.
	TrackEndStuck     TrackEndReason = "stuck"
	TrackEndException TrackEndReason = "exception"
)

// TrackStartedEvent is emitted when the node starts a track.
type TrackStartedEvent struct {
	GuildID snowflake.ID
	Track   *Track
}

// TrackEndedEvent is emitted when a track stops playing for any reason.
type TrackEndedEvent struct {
	GuildID snowflake.ID
	Track   *Track
	Reason  TrackEndReason
}

// TrackStuckEvent is emitted when the node stalls for longer than Threshold.
type TrackStuckEvent struct {
	GuildID   snowflake.ID
	Track     *Track
	Threshold time.Duration
}

// TrackExceptionEvent is emitted when the node fails while playing.
type TrackExceptionEvent struct {
	GuildID  snowflake.ID
	Track    *Track
	Message  string
	Severity string
}

// TransportClosedEvent is emitted when the guild's voice websocket closes.
type TransportClosedEvent struct {
	GuildID  snowflake.ID
	Code     int
	Reason   string
	ByRemote bool
}

// NodeStats is a snapshot of node-wide load.
type NodeStats struct {
	Players          int
	PlayingPlayers   int
	Uptime           time.Duration
	CPUCores         int
	SystemLoad       float64
	LavalinkLoad     float64
	MemoryFree       int64
	MemoryUsed       int64
	MemoryAllocated  int64
	MemoryReservable int64
}

// NodeStatsEvent carries a periodic stats snapshot.
type NodeStatsEvent struct {
	Stats NodeStats
}

func (TrackStartedEvent) Kind() EventKind          { return EventTrackStarted }
func (TrackEndedEvent) Kind() EventKind            { return EventTrackEnded }
func (TrackStuckEvent) Kind() EventKind            { return EventTrackStuck }
func (TrackExceptionEvent) Kind() EventKind        { return EventTrackException }
func (TransportClosedEvent) Kind() EventKind       { return EventTransportClosed }
func (NodeStatsEvent) Kind() EventKind             { return EventNodeStats }
func (e TrackStartedEvent) Guild() snowflake.ID    { return e.GuildID }
func (e TrackEndedEvent) Guild() snowflake.ID      { return e.GuildID }
func (e TrackStuckEvent) Guild() snowflake.ID      { return e.GuildID }
func (e TrackExceptionEvent) Guild() snowflake.ID  { return e.GuildID }
func (e TransportClosedEvent) Guild() snowflake.ID { return e.GuildID }
func (NodeStatsEvent) Guild() snowflake.ID         { return 0 }
