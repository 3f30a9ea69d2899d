package presentation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/general/application"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

const (
	colorCherry = 0xD2042D
	dateLayout  = "02/01/2006"
)

// InfoHandler handles the /server and /info commands.
type InfoHandler struct {
	interactor *application.InfoInteractor
}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler(interactor *application.InfoInteractor) *InfoHandler {
	return &InfoHandler{
		interactor: interactor,
	}
}

// HandleServer describes the guild the command was used in.
func (h *InfoHandler) HandleServer(
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

	server, err := h.interactor.Server(ctx, guildID)
	if err != nil {
		return err
	}
	return respondEmbed(r, serverEmbed(server))
}

// HandleInfo describes the given member, or the caller when none is given.
func (h *InfoHandler) HandleInfo(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil || i.Member == nil || i.Member.User == nil {
		return respondEphemeral(r, "This command can only be used in a server.")
	}

	target := i.Member.User.ID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = fmt.Sprint(opt.Value)
		}
	}
	userID, err := snowflake.Parse(target)
	if err != nil {
		return respondEphemeral(r, "I couldn't find that user.")
	}

	profile, err := h.interactor.Member(guildID, userID)
	if errors.Is(err, application.ErrUnknownMember) {
		return respondEphemeral(r, "I couldn't find that user on this server.")
	}
	if err != nil {
		return err
	}
	return respondEmbed(r, profileEmbed(profile))
}

func serverEmbed(server domain.Server) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Information about " + server.Name,
		Color: colorCherry,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Created at", Value: server.CreatedAt().UTC().Format(dateLayout)},
			{Name: "Members", Value: strconv.Itoa(server.Members)},
			{Name: "Prefix", Value: server.Prefix},
		},
	}
	if server.IconURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: server.IconURL}
	}
	return embed
}

func profileEmbed(profile domain.Profile) *discordgo.MessageEmbed {
	joined := "-"
	if !profile.JoinedAt.IsZero() {
		joined = profile.JoinedAt.UTC().Format(dateLayout)
	}

	roles := make([]string, len(profile.RoleIDs))
	for idx, id := range profile.RoleIDs {
		roles[idx] = fmt.Sprintf("<@&%d>", id)
	}
	if len(roles) == 0 {
		roles = append(roles, "-")
	}

	embed := &discordgo.MessageEmbed{
		Title: "Information about " + profile.Username,
		Color: colorCherry,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: profile.ID.String()},
			{Name: "Username", Value: profile.Username},
			{Name: "Created at", Value: profile.CreatedAt().UTC().Format(dateLayout)},
			{Name: "Joined at", Value: joined},
			{Name: "Roles", Value: strings.Join(roles, " ")},
		},
	}
	if profile.AvatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: profile.AvatarURL}
	}
	return embed
}

// CoinflipHandler handles the /coinflip command.
type CoinflipHandler struct {
	interactor *application.CoinInteractor
}

// NewCoinflipHandler creates a new CoinflipHandler.
func NewCoinflipHandler(interactor *application.CoinInteractor) *CoinflipHandler {
	return &CoinflipHandler{
		interactor: interactor,
	}
}

// Handle flips a coin.
func (h *CoinflipHandler) Handle(
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	side := h.interactor.Flip()
	return respondEmbed(r, &discordgo.MessageEmbed{
		Title:     side.String(),
		Color:     colorCherry,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: side.ImageURL()},
	})
}

func respondEmbed(r bot.Responder, embed *discordgo.MessageEmbed) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:          []*discordgo.MessageEmbed{embed},
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
}
