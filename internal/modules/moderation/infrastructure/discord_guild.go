package infrastructure

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/moderation/application"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

var _ application.Guild = (*DiscordGuild)(nil)

// bansPageSize is the largest page the ban list endpoint returns.
const bansPageSize = 1000

// DiscordGuild performs moderation actions through a discordgo session,
// reading guilds and members from the state cache before REST.
type DiscordGuild struct {
	session *discordgo.Session
}

// NewDiscordGuild creates a new DiscordGuild.
func NewDiscordGuild(session *discordgo.Session) *DiscordGuild {
	return &DiscordGuild{session: session}
}

// RecentMessages fetches messages sent before beforeID, newest first.
// A zero beforeID starts from the latest message.
func (g *DiscordGuild) RecentMessages(channelID, beforeID snowflake.ID, limit int) ([]domain.Message, error) {
	var before string
	if beforeID != 0 {
		before = beforeID.String()
	}
	messages, err := g.session.ChannelMessages(channelID.String(), limit, before, "", "")
	if err != nil {
		return nil, err
	}

	result := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		id, err := snowflake.Parse(m.ID)
		if err != nil {
			continue
		}
		result = append(result, domain.Message{ID: id, Timestamp: m.Timestamp})
	}
	return result, nil
}

// DeleteMessages removes messages, in bulk when there is more than one.
func (g *DiscordGuild) DeleteMessages(channelID snowflake.ID, messageIDs []snowflake.ID) error {
	if len(messageIDs) == 1 {
		return g.session.ChannelMessageDelete(channelID.String(), messageIDs[0].String())
	}

	ids := make([]string, len(messageIDs))
	for i, id := range messageIDs {
		ids[i] = id.String()
	}
	return g.session.ChannelMessagesBulkDelete(channelID.String(), ids)
}

// User fetches an account.
func (g *DiscordGuild) User(userID snowflake.ID) (domain.User, error) {
	user, err := g.session.User(userID.String())
	if err != nil {
		return domain.User{}, err
	}
	return toUser(user), nil
}

// Member fetches a guild member and ranks them against the guild's roles.
func (g *DiscordGuild) Member(guildID, userID snowflake.ID) (domain.Member, error) {
	member, err := g.session.State.Member(guildID.String(), userID.String())
	if err != nil {
		member, err = g.session.GuildMember(guildID.String(), userID.String())
		if err != nil {
			return domain.Member{}, fmt.Errorf("failed to fetch guild member: %w", err)
		}
	}

	guild, err := g.guild(guildID)
	if err != nil {
		return domain.Member{}, err
	}
	return toMember(member, guild), nil
}

// Self returns the bot's membership.
func (g *DiscordGuild) Self(guildID snowflake.ID) (domain.Member, error) {
	botID, err := snowflake.Parse(g.session.State.User.ID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("failed to parse bot user ID: %w", err)
	}
	return g.Member(guildID, botID)
}

// Role looks up a guild role.
func (g *DiscordGuild) Role(guildID, roleID snowflake.ID) (domain.Role, error) {
	role, err := g.session.State.Role(guildID.String(), roleID.String())
	if err != nil {
		roles, rerr := g.session.GuildRoles(guildID.String())
		if rerr != nil {
			return domain.Role{}, fmt.Errorf("failed to fetch roles: %w", rerr)
		}
		idx := slices.IndexFunc(roles, func(r *discordgo.Role) bool { return r.ID == roleID.String() })
		if idx < 0 {
			return domain.Role{}, fmt.Errorf("role %s not found", roleID)
		}
		role = roles[idx]
	}
	return toRole(role, guildID.String()), nil
}

// AddRole gives the member the role.
func (g *DiscordGuild) AddRole(guildID, userID, roleID snowflake.ID) error {
	return g.session.GuildMemberRoleAdd(guildID.String(), userID.String(), roleID.String())
}

// RemoveRole takes the role from the member.
func (g *DiscordGuild) RemoveRole(guildID, userID, roleID snowflake.ID) error {
	return g.session.GuildMemberRoleRemove(guildID.String(), userID.String(), roleID.String())
}

// Kick removes the member with an audit log reason.
func (g *DiscordGuild) Kick(guildID, userID snowflake.ID, reason string) error {
	return g.session.GuildMemberDeleteWithReason(guildID.String(), userID.String(), reason)
}

// Ban bans the user without deleting their messages.
func (g *DiscordGuild) Ban(guildID, userID snowflake.ID, reason string) error {
	return g.session.GuildBanCreateWithReason(guildID.String(), userID.String(), reason, 0)
}

// Bans returns the first page of the guild's bans.
func (g *DiscordGuild) Bans(guildID snowflake.ID) ([]domain.Ban, error) {
	bans, err := g.session.GuildBans(guildID.String(), bansPageSize, "", "")
	if err != nil {
		return nil, err
	}

	result := make([]domain.Ban, 0, len(bans))
	for _, b := range bans {
		if b.User == nil {
			continue
		}
		result = append(result, domain.Ban{User: toUser(b.User), Reason: b.Reason})
	}
	return result, nil
}

// Unban lifts the user's ban.
func (g *DiscordGuild) Unban(guildID, userID snowflake.ID) error {
	return g.session.GuildBanDelete(guildID.String(), userID.String())
}

// CreateInvite creates an invite to the system channel, or the topmost text
// channel when the guild has none.
func (g *DiscordGuild) CreateInvite(guildID snowflake.ID, maxAge time.Duration) (domain.Invitation, error) {
	guild, err := g.guild(guildID)
	if err != nil {
		return domain.Invitation{}, err
	}

	channels := guild.Channels
	if len(channels) == 0 {
		channels, err = g.session.GuildChannels(guildID.String())
		if err != nil {
			return domain.Invitation{}, fmt.Errorf("failed to fetch channels: %w", err)
		}
	}
	channelID := inviteChannel(guild.SystemChannelID, channels)
	if channelID == "" {
		return domain.Invitation{}, fmt.Errorf("guild %s has no text channel", guildID)
	}

	invite, err := g.session.ChannelInviteCreate(channelID, discordgo.Invite{
		MaxAge: int(maxAge / time.Second),
	})
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("failed to create invite: %w", err)
	}

	return domain.Invitation{
		GuildName:   guild.Name,
		GuildIcon:   guild.IconURL("256"),
		MemberCount: guild.MemberCount,
		CreatedAt:   guildID.Time(),
		URL:         "https://discord.gg/" + invite.Code,
	}, nil
}

// SendInvitation sends the invitation with a join button by direct message.
func (g *DiscordGuild) SendInvitation(userID snowflake.ID, invitation domain.Invitation) error {
	dm, err := g.session.UserChannelCreate(userID.String())
	if err != nil {
		return fmt.Errorf("failed to open direct message: %w", err)
	}

	_, err = g.session.ChannelMessageSendComplex(dm.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{invitationEmbed(invitation)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label: "Join server!",
						Style: discordgo.LinkButton,
						URL:   invitation.URL,
					},
				},
			},
		},
	})
	return err
}

func (g *DiscordGuild) guild(guildID snowflake.ID) (*discordgo.Guild, error) {
	guild, err := g.session.State.Guild(guildID.String())
	if err == nil {
		return guild, nil
	}
	guild, err = g.session.Guild(guildID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild: %w", err)
	}
	return guild, nil
}

func invitationEmbed(invitation domain.Invitation) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("**%s** invites you to **%s**", invitation.InviterName, invitation.GuildName),
		Description: fmt.Sprintf("**Members:** %d\n**Created at:** %s",
			invitation.MemberCount, invitation.CreatedAt.Format("02/01/2006")),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: invitation.GuildIcon},
		Color:     colorCherry,
	}
}

// inviteChannel prefers the system channel, then the text channel at the top.
func inviteChannel(systemChannelID string, channels []*discordgo.Channel) string {
	if systemChannelID != "" {
		return systemChannelID
	}

	text := slices.DeleteFunc(slices.Clone(channels), func(c *discordgo.Channel) bool {
		return c.Type != discordgo.ChannelTypeGuildText
	})
	if len(text) == 0 {
		return ""
	}
	return slices.MinFunc(text, func(a, b *discordgo.Channel) int {
		return cmp.Compare(a.Position, b.Position)
	}).ID
}

func toUser(u *discordgo.User) domain.User {
	id, _ := snowflake.Parse(u.ID)
	return domain.User{ID: id, Username: u.Username}
}

func toRole(r *discordgo.Role, guildID string) domain.Role {
	id, _ := snowflake.Parse(r.ID)
	return domain.Role{
		ID:       id,
		Name:     r.Name,
		Position: r.Position,
		Managed:  r.Managed,
		// @everyone shares the guild's ID.
		Everyone: r.ID == guildID,
	}
}

func toMember(m *discordgo.Member, guild *discordgo.Guild) domain.Member {
	positions := make(map[snowflake.ID]int, len(guild.Roles))
	for _, r := range guild.Roles {
		if id, err := snowflake.Parse(r.ID); err == nil {
			positions[id] = r.Position
		}
	}

	roleIDs := make([]snowflake.ID, 0, len(m.Roles))
	for _, r := range m.Roles {
		if id, err := snowflake.Parse(r); err == nil {
			roleIDs = append(roleIDs, id)
		}
	}

	member := domain.Member{
		User:      toUser(m.User),
		RoleIDs:   roleIDs,
		Hierarchy: domain.Hierarchy(roleIDs, positions),
	}
	if m.User.ID == guild.OwnerID {
		member.Hierarchy = domain.OwnerHierarchy
	}
	return member
}

// colorCherry is the embed color of invitations.
const colorCherry = 0xD2042D
