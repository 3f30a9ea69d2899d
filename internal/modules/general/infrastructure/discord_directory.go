package infrastructure

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/general/application"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

var _ application.Directory = (*DiscordDirectory)(nil)

const imageSize = "1024"

// DiscordDirectory reads guilds and members from the state cache,
// falling back to REST.
type DiscordDirectory struct {
	session *discordgo.Session
}

// NewDiscordDirectory creates a new DiscordDirectory.
func NewDiscordDirectory(session *discordgo.Session) *DiscordDirectory {
	return &DiscordDirectory{session: session}
}

// Guild describes a guild.
func (d *DiscordDirectory) Guild(guildID snowflake.ID) (domain.Server, error) {
	guild, err := d.session.State.Guild(guildID.String())
	if err == nil {
		return toServer(guild, guild.MemberCount), nil
	}

	guild, err = d.session.GuildWithCounts(guildID.String())
	if err != nil {
		return domain.Server{}, fmt.Errorf("failed to fetch guild: %w", err)
	}
	return toServer(guild, guild.ApproximateMemberCount), nil
}

// Member describes a guild member.
func (d *DiscordDirectory) Member(guildID, userID snowflake.ID) (domain.Profile, error) {
	member, err := d.session.State.Member(guildID.String(), userID.String())
	if err != nil {
		member, err = d.session.GuildMember(guildID.String(), userID.String())
		if err != nil {
			return domain.Profile{}, fmt.Errorf("failed to fetch guild member: %w", err)
		}
	}
	return toProfile(member), nil
}

func toServer(g *discordgo.Guild, members int) domain.Server {
	id, _ := snowflake.Parse(g.ID)
	return domain.Server{
		ID:      id,
		Name:    g.Name,
		IconURL: g.IconURL(imageSize),
		Members: members,
	}
}

func toProfile(m *discordgo.Member) domain.Profile {
	id, _ := snowflake.Parse(m.User.ID)
	roleIDs := make([]snowflake.ID, 0, len(m.Roles))
	for _, r := range m.Roles {
		if roleID, err := snowflake.Parse(r); err == nil {
			roleIDs = append(roleIDs, roleID)
		}
	}
	return domain.Profile{
		ID:        id,
		Username:  m.User.Username,
		AvatarURL: m.AvatarURL(imageSize),
		JoinedAt:  m.JoinedAt,
		RoleIDs:   roleIDs,
	}
}
