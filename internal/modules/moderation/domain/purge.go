package domain

import (
	"errors"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Purge limits.
const (
	MinPurge = 1
	MaxPurge = 100
)

// BulkDeleteWindow is the age limit for messages Discord deletes in bulk.
const BulkDeleteWindow = 14 * 24 * time.Hour

// ErrInvalidAmount is returned when a purge amount is out of range.
var ErrInvalidAmount = errors.New("amount must be between 1 and 100")

// Message is a channel message considered for deletion.
type Message struct {
	ID        snowflake.ID
	Timestamp time.Time
}

// ValidatePurgeAmount checks a purge amount.
func ValidatePurgeAmount(amount int) error {
	if amount < MinPurge || amount > MaxPurge {
		return ErrInvalidAmount
	}
	return nil
}

// Deletable returns the IDs of messages young enough to delete in bulk.
func Deletable(messages []Message, now time.Time) []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(messages))
	for _, m := range messages {
		if now.Sub(m.Timestamp) <= BulkDeleteWindow {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
