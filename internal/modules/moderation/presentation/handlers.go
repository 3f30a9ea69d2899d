package presentation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/moderation/application"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

const guildOnlyMessage = "This command can only be used in a server."

// colorBanlist is the embed color of the ban list.
const colorBanlist = 0xE74C3C

// Moderator runs moderation actions.
type Moderator interface {
	Purge(channelID, beforeID snowflake.ID, amount int) (int, error)
	Kick(guildID, moderatorID, targetID snowflake.ID, reason string) (domain.User, error)
	Ban(guildID, moderatorID, targetID snowflake.ID, reason string) (domain.User, error)
	Banlist(guildID snowflake.ID) ([]domain.Ban, error)
	Pardon(guildID, userID snowflake.ID) (domain.User, error)
	ToggleRole(guildID, userID, roleID snowflake.ID) (application.RoleChange, error)
	Invite(guildID, inviterID, userID snowflake.ID, hours int) (domain.User, error)
}

// CommandHandlers holds the moderation command handlers.
type CommandHandlers struct {
	moderator Moderator
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(moderator Moderator) *CommandHandlers {
	return &CommandHandlers{moderator: moderator}
}

// Handlers maps every command name to its handler.
func (h *CommandHandlers) Handlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		commandPurge:   h.HandlePurge,
		commandKick:    h.HandleKick,
		commandBan:     h.HandleBan,
		commandBanlist: h.HandleBanlist,
		commandPardon:  h.HandlePardon,
		commandRole:    h.HandleRole,
		commandInvite:  h.HandleInvite,
	}
}

// HandlePurge deletes recent messages in the channel.
func (h *CommandHandlers) HandlePurge(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondEphemeral(r, guildOnlyMessage)
	}
	opts := optionMap(i.ApplicationCommandData().Options)

	count, err := h.moderator.Purge(target.channelID, target.interactionID, intOption(opts, "amount"))
	if err != nil {
		return rejected(r, err, []rejection{
			{domain.ErrInvalidAmount, "Please enter a number between 1 and 100."},
			{application.ErrActionFailed, "I can't delete messages here."},
		})
	}

	if count == 0 {
		return respondEphemeral(r, "Nothing to delete.")
	}
	noun := "messages"
	if count == 1 {
		noun = "message"
	}
	return respondEphemeral(r, fmt.Sprintf("Done! Removed %d %s.", count, noun))
}

// HandleKick kicks a member.
func (h *CommandHandlers) HandleKick(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.punish(i, r, "kick", "Kicked ⛔", h.moderator.Kick)
}

// HandleBan bans a member.
func (h *CommandHandlers) HandleBan(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.punish(i, r, "ban", "Banned ⛔", h.moderator.Ban)
}

func (h *CommandHandlers) punish(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	verb, label string,
	action func(guildID, moderatorID, targetID snowflake.ID, reason string) (domain.User, error),
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondEphemeral(r, guildOnlyMessage)
	}
	opts := optionMap(i.ApplicationCommandData().Options)
	userID, ok := idOption(opts, "user")
	if !ok {
		return respondEphemeral(r, "You have to mention a user.")
	}
	reason := stringOption(opts, "reason")

	user, err := action(target.guildID, target.userID, userID, reason)
	if err != nil {
		return rejected(r, err, []rejection{
			{application.ErrUnknownUser, "I can't find that member."},
			{application.ErrOutranked, fmt.Sprintf("You can't %s a user who is higher or equal to you in the hierarchy.", verb)},
			{application.ErrActionFailed, fmt.Sprintf("I can't %s this user.", verb)},
		})
	}

	message := fmt.Sprintf("%s: **%s**", label, user.Username)
	if reason != "" {
		message += fmt.Sprintf("\nReason 💬: %s", reason)
	}
	return respond(r, message)
}

// HandleBanlist lists the guild's bans.
func (h *CommandHandlers) HandleBanlist(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondEphemeral(r, guildOnlyMessage)
	}

	bans, err := h.moderator.Banlist(target.guildID)
	if err != nil {
		return rejected(r, err, []rejection{
			{application.ErrActionFailed, "I can't see the banlist."},
		})
	}
	if len(bans) == 0 {
		return respond(r, "The banlist is empty.")
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{banlistEmbed(bans)},
		},
	})
}

// banlistDescriptionLimit keeps the ban list inside Discord's embed description limit.
const banlistDescriptionLimit = 4000

func banlistEmbed(bans []domain.Ban) *discordgo.MessageEmbed {
	var sb strings.Builder
	for idx, ban := range bans {
		reason := ban.Reason
		if reason == "" {
			reason = "-"
		}
		line := fmt.Sprintf("**%s**\nReason: %s - ID: %s\n", ban.User.Username, reason, ban.User.ID)
		if sb.Len()+len(line) > banlistDescriptionLimit {
			fmt.Fprintf(&sb, "...and %d more", len(bans)-idx)
			break
		}
		sb.WriteString(line)
	}

	return &discordgo.MessageEmbed{
		Title:       "Banlist ⛔",
		Description: sb.String(),
		Color:       colorBanlist,
	}
}

// HandlePardon lifts a ban.
func (h *CommandHandlers) HandlePardon(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondEphemeral(r, guildOnlyMessage)
	}
	userID, ok := idOption(optionMap(i.ApplicationCommandData().Options), "user")
	if !ok {
		return respondEphemeral(r, "You have to enter a user ID.")
	}

	user, err := h.moderator.Pardon(target.guildID, userID)
	if err != nil {
		return rejected(r, err, []rejection{
			{application.ErrUnknownUser, "I can't find that user."},
			{application.ErrActionFailed, "I can't unban this user."},
		})
	}
	return respond(r, fmt.Sprintf("Unbanned 💚: **%s**", user.Username))
}

// HandleRole toggles a role on a member.
func (h *CommandHandlers) HandleRole(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondEphemeral(r, guildOnlyMessage)
	}
	opts := optionMap(i.ApplicationCommandData().Options)
	userID, ok := idOption(opts, "user")
	if !ok {
		return respondEphemeral(r, "You have to mention a user.")
	}
	roleID, ok := idOption(opts, "role")
	if !ok {
		return respondEphemeral(r, "You have to mention a role.")
	}

	change, err := h.moderator.ToggleRole(target.guildID, userID, roleID)
	if err != nil {
		return rejected(r, err, []rejection{
			{application.ErrUnknownUser, "I can't find that member."},
			{application.ErrUnknownRole, "I can't find that role."},
			{application.ErrUnassignableRole, "I can't work with this role."},
			{application.ErrRoleAboveBot, "I can't distribute a role that is higher or equal to mine."},
			{application.ErrActionFailed, "I can't change this member's roles."},
		})
	}

	if change.Added {
		return respond(r, fmt.Sprintf("Added <@&%s> to **<@%s>**", roleID, userID))
	}
	return respond(r, fmt.Sprintf("Removed <@&%s> from **<@%s>**", roleID, userID))
}

// HandleInvite sends an invite to a user by direct message.
func (h *CommandHandlers) HandleInvite(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondEphemeral(r, guildOnlyMessage)
	}
	opts := optionMap(i.ApplicationCommandData().Options)
	userID, ok := idOption(opts, "user")
	if !ok {
		return respondEphemeral(r, "You have to enter a user ID.")
	}

	user, err := h.moderator.Invite(target.guildID, target.userID, userID, intOption(opts, "hours"))
	if errors.Is(err, application.ErrNotDelivered) {
		return respondEphemeral(r, fmt.Sprintf("I can't invite %s.", user.Username))
	}
	if err != nil {
		return rejected(r, err, []rejection{
			{application.ErrUnknownUser, "I can't invite a user that doesn't exist."},
			{application.ErrActionFailed, "I can't create an invite for this server."},
		})
	}
	return respond(r, fmt.Sprintf("Invited ✉️: **%s**", user.Username))
}

type commandTarget struct {
	guildID       snowflake.ID
	userID        snowflake.ID
	channelID     snowflake.ID
	interactionID snowflake.ID
}

func parseTarget(i *discordgo.InteractionCreate) (commandTarget, bool) {
	if i.Member == nil || i.Member.User == nil {
		return commandTarget{}, false
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return commandTarget{}, false
	}
	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return commandTarget{}, false
	}
	channelID, err := snowflake.Parse(i.ChannelID)
	if err != nil {
		return commandTarget{}, false
	}
	// Zero when unknown; purge then starts from the latest message.
	interactionID, _ := snowflake.Parse(i.ID)

	return commandTarget{
		guildID:       guildID,
		userID:        userID,
		channelID:     channelID,
		interactionID: interactionID,
	}, true
}

func optionMap(
	options []*discordgo.ApplicationCommandInteractionDataOption,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

// idOption reads a user, role or channel option, which arrive as ID strings.
func idOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) (snowflake.ID, bool) {
	opt, ok := opts[name]
	if !ok {
		return 0, false
	}
	raw, ok := opt.Value.(string)
	if !ok {
		return 0, false
	}
	id, err := snowflake.Parse(raw)
	return id, err == nil
}

type rejection struct {
	err     error
	message string
}

// rejected replies with the first matching rejection and hands anything
// else back to the bot.
func rejected(r bot.Responder, err error, rejections []rejection) error {
	for _, rej := range rejections {
		if errors.Is(err, rej.err) {
			return respondEphemeral(r, rej.message)
		}
	}
	return err
}

func respond(r bot.Responder, content string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
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
