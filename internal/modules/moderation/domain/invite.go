package domain

import "time"

// MaxInviteHours is the longest invite lifetime that can be requested.
const MaxInviteHours = 24

// InviteLifetime converts a requested lifetime in hours to an invite max age.
// Anything outside 1 to 24 hours yields zero, which never expires.
func InviteLifetime(hours int) time.Duration {
	if hours < 1 || hours > MaxInviteHours {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

// Invitation is the direct message sent to an invited user.
type Invitation struct {
	GuildName   string
	GuildIcon   string
	InviterName string
	MemberCount int
	CreatedAt   time.Time
	URL         string
}
