package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/moderation/application"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

// mockModerator records calls and returns canned results.
type mockModerator struct {
	calls []string

	purgeBefore snowflake.ID
	purgeCount  int
	user        domain.User
	bans        []domain.Ban
	change      application.RoleChange
	hours       int
	err         error
}

func (m *mockModerator) Purge(_, beforeID snowflake.ID, _ int) (int, error) {
	m.calls = append(m.calls, "purge")
	m.purgeBefore = beforeID
	return m.purgeCount, m.err
}

func (m *mockModerator) Kick(_, _, _ snowflake.ID, _ string) (domain.User, error) {
	m.calls = append(m.calls, "kick")
	return m.user, m.err
}

func (m *mockModerator) Ban(_, _, _ snowflake.ID, _ string) (domain.User, error) {
	m.calls = append(m.calls, "ban")
	return m.user, m.err
}

func (m *mockModerator) Banlist(snowflake.ID) ([]domain.Ban, error) {
	m.calls = append(m.calls, "banlist")
	return m.bans, m.err
}

func (m *mockModerator) Pardon(_, _ snowflake.ID) (domain.User, error) {
	m.calls = append(m.calls, "pardon")
	return m.user, m.err
}

func (m *mockModerator) ToggleRole(_, _, _ snowflake.ID) (application.RoleChange, error) {
	m.calls = append(m.calls, "role")
	return m.change, m.err
}

func (m *mockModerator) Invite(_, _, _ snowflake.ID, hours int) (domain.User, error) {
	m.calls = append(m.calls, "invite")
	m.hours = hours
	return m.user, m.err
}

func option(name string, typ discordgo.ApplicationCommandOptionType, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: typ, Value: value}
}

func guildInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "900",
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   "100",
			ChannelID: "300",
			Member:    &discordgo.Member{User: &discordgo.User{ID: "200"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
		},
	}
}
