package application

import (
	"errors"
	"slices"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/moderation/domain"
)

const (
	testGuildID   = snowflake.ID(100)
	testChannelID = snowflake.ID(300)
	testBotID     = snowflake.ID(1)
	testModID     = snowflake.ID(200)
	testTargetID  = snowflake.ID(201)
	testRoleID    = snowflake.ID(500)
)

var errNotFound = errors.New("not found")

// fakeGuild is a hand-written Guild double backed by maps.
type fakeGuild struct {
	messages []domain.Message
	deleted  []snowflake.ID
	fetchErr error

	users   map[snowflake.ID]domain.User
	members map[snowflake.ID]domain.Member
	roles   map[snowflake.ID]domain.Role

	bans    []domain.Ban
	actions []string
	failErr error

	invitation domain.Invitation
	sentTo     snowflake.ID
	sent       domain.Invitation
	sendErr    error
}

func newFakeGuild() *fakeGuild {
	return &fakeGuild{
		users: map[snowflake.ID]domain.User{
			testBotID:    {ID: testBotID, Username: "cherry"},
			testModID:    {ID: testModID, Username: "mod"},
			testTargetID: {ID: testTargetID, Username: "target"},
		},
		members: map[snowflake.ID]domain.Member{
			testBotID:    {User: domain.User{ID: testBotID, Username: "cherry"}, Hierarchy: 10},
			testModID:    {User: domain.User{ID: testModID, Username: "mod"}, Hierarchy: 5},
			testTargetID: {User: domain.User{ID: testTargetID, Username: "target"}, Hierarchy: 1},
		},
		roles: map[snowflake.ID]domain.Role{
			testRoleID: {ID: testRoleID, Name: "DJ", Position: 3},
		},
		invitation: domain.Invitation{GuildName: "Cherry Lounge", URL: "https://discord.gg/cherry"},
	}
}

func (f *fakeGuild) RecentMessages(_, _ snowflake.ID, limit int) ([]domain.Message, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.messages[:min(limit, len(f.messages))], nil
}

func (f *fakeGuild) DeleteMessages(_ snowflake.ID, ids []snowflake.ID) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.deleted = append(f.deleted, ids...)
	return nil
}

func (f *fakeGuild) User(userID snowflake.ID) (domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return domain.User{}, errNotFound
	}
	return u, nil
}

func (f *fakeGuild) Member(_, userID snowflake.ID) (domain.Member, error) {
	m, ok := f.members[userID]
	if !ok {
		return domain.Member{}, errNotFound
	}
	return m, nil
}

func (f *fakeGuild) Self(guildID snowflake.ID) (domain.Member, error) {
	return f.Member(guildID, testBotID)
}

func (f *fakeGuild) Role(_, roleID snowflake.ID) (domain.Role, error) {
	r, ok := f.roles[roleID]
	if !ok {
		return domain.Role{}, errNotFound
	}
	return r, nil
}

func (f *fakeGuild) AddRole(_, userID, roleID snowflake.ID) error {
	return f.act("add", func() {
		m := f.members[userID]
		m.RoleIDs = append(m.RoleIDs, roleID)
		f.members[userID] = m
	})
}

func (f *fakeGuild) RemoveRole(_, userID, roleID snowflake.ID) error {
	return f.act("remove", func() {
		m := f.members[userID]
		m.RoleIDs = slices.DeleteFunc(m.RoleIDs, func(id snowflake.ID) bool { return id == roleID })
		f.members[userID] = m
	})
}

func (f *fakeGuild) Kick(_, _ snowflake.ID, _ string) error {
	return f.act("kick", nil)
}

func (f *fakeGuild) Ban(_, userID snowflake.ID, reason string) error {
	return f.act("ban", func() {
		f.bans = append(f.bans, domain.Ban{User: f.users[userID], Reason: reason})
	})
}

func (f *fakeGuild) Bans(snowflake.ID) ([]domain.Ban, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.bans, nil
}

func (f *fakeGuild) Unban(_, userID snowflake.ID) error {
	return f.act("unban", func() {
		f.bans = slices.DeleteFunc(f.bans, func(b domain.Ban) bool { return b.User.ID == userID })
	})
}

func (f *fakeGuild) CreateInvite(_ snowflake.ID, maxAge time.Duration) (domain.Invitation, error) {
	if f.failErr != nil {
		return domain.Invitation{}, f.failErr
	}
	f.actions = append(f.actions, "invite "+maxAge.String())
	return f.invitation, nil
}

func (f *fakeGuild) SendInvitation(userID snowflake.ID, invitation domain.Invitation) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentTo = userID
	f.sent = invitation
	return nil
}

func (f *fakeGuild) act(name string, apply func()) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.actions = append(f.actions, name)
	if apply != nil {
		apply()
	}
	return nil
}
