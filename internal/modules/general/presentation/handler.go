package presentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/general/application"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

// storeTimeout bounds settings store calls made from gateway handlers.
const storeTimeout = 5 * time.Second

// PingHandler handles the /ping command.
type PingHandler struct {
	interactor *application.PingInteractor
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler(interactor *application.PingInteractor) *PingHandler {
	return &PingHandler{
		interactor: interactor,
	}
}

// Handle processes the ping command and sends the response.
func (h *PingHandler) Handle(
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	result := h.interactor.Execute(ctx)

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: result.Summary(),
		},
	})
}

// PrefixHandler handles the /prefix command.
type PrefixHandler struct {
	interactor *application.PrefixInteractor
}

// NewPrefixHandler creates a new PrefixHandler.
func NewPrefixHandler(interactor *application.PrefixInteractor) *PrefixHandler {
	return &PrefixHandler{
		interactor: interactor,
	}
}

// Handle shows the guild's prefix, or changes it when a value is given.
func (h *PrefixHandler) Handle(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondEphemeral(r, "This command can only be used in a server.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	var value string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "value" {
			value = opt.StringValue()
		}
	}

	if value == "" {
		prefix := h.interactor.Get(ctx, guildID)
		return respond(r, fmt.Sprintf("The prefix for this server is `%s`.", prefix))
	}

	prefix, err := h.interactor.Set(ctx, guildID, value)
	if errors.Is(err, domain.ErrInvalidPrefix) {
		return respondEphemeral(r, err.Error())
	}
	if err != nil {
		return err
	}
	return respond(r, fmt.Sprintf("Prefix changed to `%s`.", prefix))
}

// GuildHandler keeps settings rows in step with the guilds the bot is in.
type GuildHandler struct {
	interactor *application.GuildInteractor
}

// NewGuildHandler creates a new GuildHandler.
func NewGuildHandler(interactor *application.GuildInteractor) *GuildHandler {
	return &GuildHandler{
		interactor: interactor,
	}
}

// HandleGuildCreate is the discordgo event handler for GuildCreate events.
// It also fires for every guild on connect, which is harmless since
// creating a row keeps an existing one.
func (h *GuildHandler) HandleGuildCreate(_ *discordgo.Session, e *discordgo.GuildCreate) {
	guildID, err := snowflake.Parse(e.ID)
	if err != nil {
		slog.Warn("received guild create with invalid ID", "guild", e.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := h.interactor.Joined(ctx, guildID); err != nil {
		slog.Error("failed to record guild", "guild", guildID, "error", err)
	}
}

// HandleGuildDelete is the discordgo event handler for GuildDelete events.
func (h *GuildHandler) HandleGuildDelete(_ *discordgo.Session, e *discordgo.GuildDelete) {
	// Unavailable guilds are outages, not removals.
	if e.Unavailable {
		return
	}

	guildID, err := snowflake.Parse(e.ID)
	if err != nil {
		slog.Warn("received guild delete with invalid ID", "guild", e.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := h.interactor.Left(ctx, guildID); err != nil {
		slog.Error("failed to forget guild", "guild", guildID, "error", err)
		return
	}
	slog.Info("removed guild settings", "guild", guildID)
}

func respond(r bot.Responder, content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondEphemeral(r bot.Responder, content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
