package infrastructure

import (
	"github.com/disgoorg/snowflake/v2"
)

// voiceHandshake collects the two gateway events Lavalink needs before it can
// open a guild's voice connection. They may arrive in either order; forwarding
// only one of them yields a partial voice state on the node.
type voiceHandshake struct {
	// From VoiceStateUpdate
	hasState  bool
	channelID *snowflake.ID
	sessionID string

	// From VoiceServerUpdate
	hasServer bool
	token     string
	endpoint  string

	// ready is closed once both halves arrived. nil when nobody is joining.
	ready chan struct{}
}

// voiceUpdate is a complete handshake ready to be forwarded.
type voiceUpdate struct {
	channelID *snowflake.ID
	sessionID string
	token     string
	endpoint  string
}

func (h *voiceHandshake) setState(channelID *snowflake.ID, sessionID string) {
	h.hasState = true
	h.channelID = channelID
	h.sessionID = sessionID
}

func (h *voiceHandshake) setServer(token, endpoint string) {
	h.hasServer = true
	h.token = token
	h.endpoint = endpoint
}

// take returns the complete handshake and resets it, releasing a waiting join.
// ok is false while one half is still missing.
func (h *voiceHandshake) take() (update voiceUpdate, ok bool) {
	if !h.hasState || !h.hasServer {
		return voiceUpdate{}, false
	}

	update = voiceUpdate{
		channelID: h.channelID,
		sessionID: h.sessionID,
		token:     h.token,
		endpoint:  h.endpoint,
	}

	if h.ready != nil {
		close(h.ready)
		h.ready = nil
	}
	*h = voiceHandshake{}
	return update, true
}
