package application

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

var (
	// ErrUnknownUser is returned when the target account does not exist.
	ErrUnknownUser = errors.New("user not found")
	// ErrUnknownRole is returned when the target role does not exist.
	ErrUnknownRole = errors.New("role not found")
	// ErrOutranked is returned when the moderator does not sit above the target.
	ErrOutranked = errors.New("target is higher or equal in the hierarchy")
	// ErrUnassignableRole is returned for integration roles and @everyone.
	ErrUnassignableRole = errors.New("role cannot be assigned")
	// ErrRoleAboveBot is returned when the role is at or above the bot's highest role.
	ErrRoleAboveBot = errors.New("role is higher or equal to the bot's")
	// ErrActionFailed is returned when Discord rejects the action.
	ErrActionFailed = errors.New("moderation action failed")
	// ErrNotDelivered is returned when the invitation could not be sent.
	ErrNotDelivered = errors.New("invitation not delivered")
)

// RoleChange reports the outcome of a role toggle.
type RoleChange struct {
	Role   domain.Role
	Member domain.Member
	Added  bool
}

// ModerationInteractor runs the moderation commands.
type ModerationInteractor struct {
	guild Guild
	now   func() time.Time
}

// NewModerationInteractor creates a new ModerationInteractor.
func NewModerationInteractor(guild Guild) *ModerationInteractor {
	return &ModerationInteractor{
		guild: guild,
		now:   time.Now,
	}
}

// Purge deletes up to amount recent messages sent before beforeID and
// returns how many were removed. Messages older than two weeks are kept.
func (m *ModerationInteractor) Purge(channelID, beforeID snowflake.ID, amount int) (int, error) {
	if err := domain.ValidatePurgeAmount(amount); err != nil {
		return 0, err
	}

	messages, err := m.guild.RecentMessages(channelID, beforeID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch messages: %w", err)
	}

	ids := domain.Deletable(messages, m.now())
	if len(ids) == 0 {
		return 0, nil
	}
	if err := m.guild.DeleteMessages(channelID, ids); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	return len(ids), nil
}

// Kick removes the target from the guild.
func (m *ModerationInteractor) Kick(guildID, moderatorID, targetID snowflake.ID, reason string) (domain.User, error) {
	target, err := m.outrankedTarget(guildID, moderatorID, targetID)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.guild.Kick(guildID, targetID, reason); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	slog.Info("kicked member", "guild", guildID, "user", targetID, "moderator", moderatorID)
	return target.User, nil
}

// Ban bans the target from the guild.
func (m *ModerationInteractor) Ban(guildID, moderatorID, targetID snowflake.ID, reason string) (domain.User, error) {
	target, err := m.outrankedTarget(guildID, moderatorID, targetID)
	if err != nil {
		return domain.User{}, err
	}
	if err := m.guild.Ban(guildID, targetID, reason); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	slog.Info("banned member", "guild", guildID, "user", targetID, "moderator", moderatorID)
	return target.User, nil
}

// Banlist returns the guild's bans.
func (m *ModerationInteractor) Banlist(guildID snowflake.ID) ([]domain.Ban, error) {
	bans, err := m.guild.Bans(guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	return bans, nil
}

// Pardon lifts a ban.
func (m *ModerationInteractor) Pardon(guildID, userID snowflake.ID) (domain.User, error) {
	user, err := m.guild.User(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrUnknownUser, err)
	}
	if err := m.guild.Unban(guildID, userID); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	slog.Info("unbanned user", "guild", guildID, "user", userID)
	return user, nil
}

// ToggleRole gives the member the role, or takes it away if they hold it.
func (m *ModerationInteractor) ToggleRole(guildID, userID, roleID snowflake.ID) (RoleChange, error) {
	member, err := m.guild.Member(guildID, userID)
	if err != nil {
		return RoleChange{}, fmt.Errorf("%w: %w", ErrUnknownUser, err)
	}
	role, err := m.guild.Role(guildID, roleID)
	if err != nil {
		return RoleChange{}, fmt.Errorf("%w: %w", ErrUnknownRole, err)
	}
	if !role.Assignable() {
		return RoleChange{}, ErrUnassignableRole
	}

	self, err := m.guild.Self(guildID)
	if err != nil {
		return RoleChange{}, fmt.Errorf("failed to get own member: %w", err)
	}
	if !self.CanManage(role) {
		return RoleChange{}, ErrRoleAboveBot
	}

	change := RoleChange{Role: role, Member: member}
	if member.HasRole(roleID) {
		err = m.guild.RemoveRole(guildID, userID, roleID)
	} else {
		err = m.guild.AddRole(guildID, userID, roleID)
		change.Added = true
	}
	if err != nil {
		return RoleChange{}, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	return change, nil
}

// Invite creates an invite to the guild and sends it to the user.
// hours outside 1 to 24 creates an invite that never expires.
func (m *ModerationInteractor) Invite(guildID, inviterID, userID snowflake.ID, hours int) (domain.User, error) {
	user, err := m.guild.User(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrUnknownUser, err)
	}
	inviter, err := m.guild.User(inviterID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrUnknownUser, err)
	}

	invitation, err := m.guild.CreateInvite(guildID, domain.InviteLifetime(hours))
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrActionFailed, err)
	}
	invitation.InviterName = inviter.Username

	if err := m.guild.SendInvitation(userID, invitation); err != nil {
		slog.Debug("failed to send invitation", "guild", guildID, "user", userID, "error", err)
		return user, fmt.Errorf("%w: %w", ErrNotDelivered, err)
	}
	return user, nil
}

// outrankedTarget loads the target and checks the moderator sits above them.
func (m *ModerationInteractor) outrankedTarget(guildID, moderatorID, targetID snowflake.ID) (domain.Member, error) {
	target, err := m.guild.Member(guildID, targetID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("%w: %w", ErrUnknownUser, err)
	}
	moderator, err := m.guild.Member(guildID, moderatorID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("failed to get moderator: %w", err)
	}
	if !moderator.Outranks(target) {
		return domain.Member{}, ErrOutranked
	}
	return target, nil
}
