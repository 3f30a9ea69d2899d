package domain

import (
	"math"

	"github.com/disgoorg/snowflake/v2"
)

// OwnerHierarchy ranks the guild owner above every role.
const OwnerHierarchy = math.MaxInt

// User is a Discord account.
type User struct {
	ID       snowflake.ID
	Username string
}

// Role is a guild role.
type Role struct {
	ID       snowflake.ID
	Name     string
	Position int
	Managed  bool
	Everyone bool
}

// Assignable reports whether the role can be given or taken by hand.
// Integration roles and @everyone cannot.
func (r Role) Assignable() bool {
	return !r.Managed && !r.Everyone
}

// Member is a user's membership in a guild.
type Member struct {
	User    User
	RoleIDs []snowflake.ID
	// Hierarchy is the position of the member's highest role, or
	// OwnerHierarchy for the guild owner.
	Hierarchy int
}

// HasRole reports whether the member holds the role.
func (m Member) HasRole(roleID snowflake.ID) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Outranks reports whether m sits strictly above other.
func (m Member) Outranks(other Member) bool {
	return m.Hierarchy > other.Hierarchy
}

// CanManage reports whether m sits strictly above the role.
func (m Member) CanManage(role Role) bool {
	return m.Hierarchy > role.Position
}

// Hierarchy returns the highest position among the member's roles.
// positions maps role IDs to their positions; unknown roles are ignored.
func Hierarchy(roleIDs []snowflake.ID, positions map[snowflake.ID]int) int {
	highest := 0
	for _, id := range roleIDs {
		if p, ok := positions[id]; ok && p > highest {
			highest = p
		}
	}
	return highest
}

// Ban is an entry of a guild's ban list.
type Ban struct {
	User   User
	Reason string
}
