package usecases

import (
	"fmt"
	"testing"
)

func TestIsRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "invalid query", err: ErrInvalidQuery, want: true},
		{name: "wrong channel", err: ErrWrongChannel, want: true},
		{name: "wrapped rejection", err: fmt.Errorf("play: %w", ErrNoResults), want: true},
		{name: "node failure", err: fmt.Errorf("%w: play: %w", ErrNodeCommandFailed, errBoom), want: false},
		{name: "no lyrics", err: ErrNoLyrics, want: true},
		{name: "lyrics failure", err: fmt.Errorf("%w: %w", ErrLyricsUnavailable, errBoom), want: false},
		{name: "persistence failure", err: ErrPersistenceFailed, want: false},
		{name: "unrelated error", err: errBoom, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRejection(tt.err); got != tt.want {
				t.Errorf("IsRejection(%v) = %v, expected %v", tt.err, got, tt.want)
			}
		})
	}
}
