package domain

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Server describes a guild for the /server command.
type Server struct {
	ID      snowflake.ID
	Name    string
	IconURL string
	Members int
	Prefix  string
}

// CreatedAt is derived from the guild's snowflake.
func (s Server) CreatedAt() time.Time {
	return s.ID.Time()
}

// Profile describes a guild member for the /info command.
type Profile struct {
	ID        snowflake.ID
	Username  string
	AvatarURL string
	JoinedAt  time.Time // Zero when unknown
	RoleIDs   []snowflake.ID
}

// CreatedAt is derived from the account's snowflake.
func (p Profile) CreatedAt() time.Time {
	return p.ID.Time()
}
