package discord

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
)

// VoiceUpdateSink receives the gateway voice updates the audio node needs.
type VoiceUpdateSink interface {
	OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate)
	OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate)
}

// SessionCloser discards a guild's session.
type SessionCloser interface {
	Disconnect(ctx context.Context, guildID snowflake.ID) error
}

// EventHandlers handles Discord gateway events for the music player.
type EventHandlers struct {
	botID    string
	voice    VoiceUpdateSink
	sessions SessionCloser
}

// NewEventHandlers creates a new EventHandlers.
func NewEventHandlers(botID string, voice VoiceUpdateSink, sessions SessionCloser) *EventHandlers {
	return &EventHandlers{
		botID:    botID,
		voice:    voice,
		sessions: sessions,
	}
}

// HandleVoiceServerUpdate forwards voice server updates to the node.
func (h *EventHandlers) HandleVoiceServerUpdate(_ *discordgo.Session, event *discordgo.VoiceServerUpdate) {
	h.voice.OnVoiceServerUpdate(event)
}

// HandleVoiceStateUpdate forwards the bot's voice state to the node and
// drops the session when the bot was disconnected from outside.
func (h *EventHandlers) HandleVoiceStateUpdate(_ *discordgo.Session, event *discordgo.VoiceStateUpdate) {
	// Only handle updates for the bot itself
	if event.UserID != h.botID {
		return
	}

	h.voice.OnVoiceStateUpdate(event)

	if event.ChannelID != "" {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	err = h.sessions.Disconnect(ctx, guildID)
	if err != nil && !errors.Is(err, usecases.ErrNotConnected) {
		slog.Warn("failed to drop session after disconnect", "guild", guildID, "error", err)
	}
}
