package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

// Command names.
const (
	commandPurge   = "purge"
	commandKick    = "kick"
	commandBan     = "ban"
	commandBanlist = "banlist"
	commandPardon  = "pardon"
	commandRole    = "role"
	commandInvite  = "invite"
)

// Default member permissions. Discord hides each command from members
// without them, and prefix commands check them before dispatch.
var (
	permManageMessages int64 = discordgo.PermissionManageMessages
	permKickMembers    int64 = discordgo.PermissionKickMembers
	permBanMembers     int64 = discordgo.PermissionBanMembers
	permManageRoles    int64 = discordgo.PermissionManageRoles
	permCreateInvite   int64 = discordgo.PermissionCreateInstantInvite
)

// Commands returns all slash commands for the moderation module.
func Commands() []*discordgo.ApplicationCommand {
	minPurge := float64(domain.MinPurge)
	minHours := 1.0

	return []*discordgo.ApplicationCommand{
		{
			Name:                     commandPurge,
			Description:              "Delete up to 100 recent messages",
			DefaultMemberPermissions: &permManageMessages,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "How many messages to delete",
					Required:    true,
					MinValue:    &minPurge,
					MaxValue:    domain.MaxPurge,
				},
			},
		},
		{
			Name:                     commandKick,
			Description:              "Kick a member from the server",
			DefaultMemberPermissions: &permKickMembers,
			Options:                  memberWithReason("Member to kick"),
		},
		{
			Name:                     commandBan,
			Description:              "Ban a member from the server",
			DefaultMemberPermissions: &permBanMembers,
			Options:                  memberWithReason("Member to ban"),
		},
		{
			Name:                     commandBanlist,
			Description:              "List all banned users",
			DefaultMemberPermissions: &permBanMembers,
		},
		{
			Name:                     commandPardon,
			Description:              "Lift a user's ban",
			DefaultMemberPermissions: &permBanMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to unban (ID)",
					Required:    true,
				},
			},
		},
		{
			Name:                     commandRole,
			Description:              "Give a member a role, or take it away",
			DefaultMemberPermissions: &permManageRoles,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to change",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to toggle",
					Required:    true,
				},
			},
		},
		{
			Name:                     commandInvite,
			Description:              "Invite a user to this server by direct message",
			DefaultMemberPermissions: &permCreateInvite,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to invite",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "hours",
					Description: "Hours until the invite expires (never by default)",
					Required:    false,
					MinValue:    &minHours,
					MaxValue:    domain.MaxInviteHours,
				},
			},
		},
	}
}

func memberWithReason(description string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: description,
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the audit log",
			Required:    false,
		},
	}
}
