package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// PlaybackState is the lifecycle state of a session.
type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StatePlaying
	StatePaused
)

// String returns a human-readable representation of the state.
func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Session is the live playback context of one guild.
// It is only mutated from the guild's serial lane.
type Session struct {
	GuildID        snowflake.ID
	VoiceChannelID snowflake.ID
	TextChannelID  snowflake.ID
	Queue          *Queue

	state   PlaybackState
	current *Track
	volume  Volume
	filter  Filter
	repeat  bool

	// failed is a track already advanced past after a node error. The node
	// still reports it as ended once, and that report must not advance again.
	failed *Track
}

// NewSession creates an idle session bound to the given channels.
func NewSession(guildID, voiceChannelID, textChannelID snowflake.ID, volume Volume) *Session {
	return &Session{
		GuildID:        guildID,
		VoiceChannelID: voiceChannelID,
		TextChannelID:  textChannelID,
		Queue:          NewQueue(),
		state:          StateIdle,
		volume:         volume,
		filter:         EmptyFilter(),
	}
}

// State returns the current playback state.
func (s *Session) State() PlaybackState {
	return s.state
}

// IsIdle returns true if nothing is loaded on the node.
func (s *Session) IsIdle() bool {
	return s.state == StateIdle
}

// Current returns the track in the active slot, or nil when idle.
func (s *Session) Current() *Track {
	return s.current
}

// IsCurrent reports whether track is the one in the active slot.
func (s *Session) IsCurrent(track *Track) bool {
	return s.current.SameAs(track)
}

// StartTrack places track in the active slot and marks the session playing.
func (s *Session) StartTrack(track *Track) {
	s.current = track
	s.state = StatePlaying
}

// Pause transitions Playing to Paused. It reports whether the transition happened.
func (s *Session) Pause() bool {
	if s.state != StatePlaying {
		return false
	}
	s.state = StatePaused
	return true
}

// Resume transitions Paused to Playing. It reports whether the transition happened.
func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StatePlaying
	return true
}

// MarkFailed records that track failed and the session advanced past it.
func (s *Session) MarkFailed(track *Track) {
	s.failed = track
}

// ConsumeFailedEnd reports whether track is the one recorded by MarkFailed.
// The record is cleared on a match, so each failure is consumed once.
func (s *Session) ConsumeFailedEnd(track *Track) bool {
	if !s.failed.SameAs(track) {
		return false
	}
	s.failed = nil
	return true
}

// Idle empties the active slot.
func (s *Session) Idle() {
	s.current = nil
	s.state = StateIdle
}

func (s *Session) Volume() Volume {
	return s.volume
}

func (s *Session) SetVolume(v Volume) {
	s.volume = v
}

func (s *Session) Filter() Filter {
	return s.filter
}

func (s *Session) SetFilter(f Filter) {
	s.filter = f
}

// Repeat returns the in-memory mirror of the guild's persisted repeat flag.
func (s *Session) Repeat() bool {
	return s.repeat
}

func (s *Session) SetRepeat(enabled bool) {
	s.repeat = enabled
}
