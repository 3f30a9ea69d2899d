package application

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

// Guild performs moderation actions against the gateway.
type Guild interface {
	// RecentMessages returns up to limit messages sent before beforeID.
	RecentMessages(channelID, beforeID snowflake.ID, limit int) ([]domain.Message, error)
	// DeleteMessages removes the messages from the channel.
	DeleteMessages(channelID snowflake.ID, messageIDs []snowflake.ID) error

	// User looks up an account outside any guild.
	User(userID snowflake.ID) (domain.User, error)
	// Member looks up a guild member with their hierarchy.
	Member(guildID, userID snowflake.ID) (domain.Member, error)
	// Self returns the bot's own membership.
	Self(guildID snowflake.ID) (domain.Member, error)
	// Role looks up a guild role.
	Role(guildID, roleID snowflake.ID) (domain.Role, error)

	AddRole(guildID, userID, roleID snowflake.ID) error
	RemoveRole(guildID, userID, roleID snowflake.ID) error

	Kick(guildID, userID snowflake.ID, reason string) error
	Ban(guildID, userID snowflake.ID, reason string) error
	Bans(guildID snowflake.ID) ([]domain.Ban, error)
	Unban(guildID, userID snowflake.ID) error

	// CreateInvite creates an invite to the guild's default channel.
	// A zero maxAge never expires.
	CreateInvite(guildID snowflake.ID, maxAge time.Duration) (domain.Invitation, error)
	// SendInvitation delivers the invitation to the user by direct message.
	SendInvitation(userID snowflake.ID, invitation domain.Invitation) error
}
