package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// SessionRepository stores the live session of each guild.
type SessionRepository interface {
	// Get returns the Session for the given guild, or nil if none exists.
	Get(guildID snowflake.ID) *Session

	// Save stores the Session, replacing any previous one for its guild.
	Save(session *Session)

	// Delete removes the Session for the given guild.
	Delete(guildID snowflake.ID)

	// Count returns the number of live sessions.
	Count() int
}
