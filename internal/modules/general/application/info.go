package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
)

// ErrUnknownMember is returned when the user is not a member of the guild.
var ErrUnknownMember = errors.New("unknown member")

// Directory looks up guilds and their members.
type Directory interface {
	Guild(guildID snowflake.ID) (domain.Server, error)
	Member(guildID, userID snowflake.ID) (domain.Profile, error)
}

// InfoInteractor describes guilds and members.
type InfoInteractor struct {
	directory Directory
	prefixes  *PrefixInteractor
}

// NewInfoInteractor creates a new InfoInteractor.
func NewInfoInteractor(directory Directory, prefixes *PrefixInteractor) *InfoInteractor {
	return &InfoInteractor{
		directory: directory,
		prefixes:  prefixes,
	}
}

// Server describes the guild, including its effective prefix.
func (i *InfoInteractor) Server(ctx context.Context, guildID snowflake.ID) (domain.Server, error) {
	server, err := i.directory.Guild(guildID)
	if err != nil {
		return domain.Server{}, fmt.Errorf("failed to look up guild: %w", err)
	}
	server.Prefix = i.prefixes.Get(ctx, guildID)
	return server, nil
}

// Member describes a member of the guild.
func (i *InfoInteractor) Member(guildID, userID snowflake.ID) (domain.Profile, error) {
	profile, err := i.directory.Member(guildID, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", ErrUnknownMember, err)
	}
	return profile, nil
}

// CoinInteractor flips coins.
type CoinInteractor struct {
	flip func() bool
}

// NewCoinInteractor creates a CoinInteractor backed by math/rand/v2.
func NewCoinInteractor() *CoinInteractor {
	return &CoinInteractor{flip: func() bool { return rand.IntN(2) == 1 }}
}

// Flip returns a random side.
func (c *CoinInteractor) Flip() domain.CoinSide {
	return domain.CoinSide(c.flip())
}
