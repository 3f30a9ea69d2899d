package application

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

// fakeStore is a hand-written settings store double.
type fakeStore struct {
	pingErr error

	prefixes  map[snowflake.ID]string
	getErr    error
	setErr    error
	guilds    map[snowflake.ID]bool
	createErr error
	removeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prefixes: make(map[snowflake.ID]string),
		guilds:   make(map[snowflake.ID]bool),
	}
}

func (f *fakeStore) Ping(context.Context) error {
	return f.pingErr
}

func (f *fakeStore) GetPrefix(_ context.Context, guildID snowflake.ID) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.prefixes[guildID], nil
}

func (f *fakeStore) SetPrefix(_ context.Context, guildID snowflake.ID, prefix string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.prefixes[guildID] = prefix
	return nil
}

func (f *fakeStore) CreateGuild(_ context.Context, guildID snowflake.ID) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.guilds[guildID] = true
	return nil
}

func (f *fakeStore) RemoveGuild(_ context.Context, guildID snowflake.ID) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.guilds, guildID)
	return nil
}

// fakeDirectory serves fixed guilds and members.
type fakeDirectory struct {
	servers  map[snowflake.ID]domain.Server
	profiles map[snowflake.ID]domain.Profile
}

func (f *fakeDirectory) Guild(guildID snowflake.ID) (domain.Server, error) {
	server, ok := f.servers[guildID]
	if !ok {
		return domain.Server{}, errors.New("guild not found")
	}
	return server, nil
}

func (f *fakeDirectory) Member(_, userID snowflake.ID) (domain.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return domain.Profile{}, errors.New("member not found")
	}
	return profile, nil
}
