package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidVolume is returned for volumes outside the accepted range.
var ErrInvalidVolume = errors.New("volume must be between 0 and 200")

// Volume is a playback volume in percent.
type Volume int

const (
	MinVolume      Volume = 0
	StandardVolume Volume = 100
	MaxVolume      Volume = 200
	EarrapeVolume  Volume = 500
)

// EarrapeKeyword opts into EarrapeVolume.
const EarrapeKeyword = "earrape"

// NewVolume validates a percentage.
// Accepted values are [MinVolume, MaxVolume] and EarrapeVolume.
func NewVolume(percent int) (Volume, error) {
	v := Volume(percent)
	if v == EarrapeVolume || (v >= MinVolume && v <= MaxVolume) {
		return v, nil
	}
	return 0, ErrInvalidVolume
}

// ParseVolume accepts a percentage or the earrape keyword.
func ParseVolume(s string) (Volume, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, EarrapeKeyword) {
		return EarrapeVolume, nil
	}

	percent, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return 0, ErrInvalidVolume
	}
	return NewVolume(percent)
}

// Multiplier returns the fractional gain sent to the node.
func (v Volume) Multiplier() float64 {
	return float64(v) / 100
}
