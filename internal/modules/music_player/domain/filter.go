package domain

import (
	"errors"
	"strings"
)

// ErrUnknownFilter is returned when a filter or level name is not recognized.
var ErrUnknownFilter = errors.New("unknown filter")

// FilterKind is the audio effect preset applied by the node.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterNightcore
	FilterDaycore
	FilterSmoothing
	Filter8D
)

// FilterLevel is the intensity of a preset.
type FilterLevel int

const (
	LevelLow FilterLevel = iota
	LevelMedium
	LevelHigh
	LevelUltra
)

// ParseFilterLevel converts a level name to a FilterLevel. Empty means medium.
func ParseFilterLevel(s string) (FilterLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow, nil
	case "", "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	case "ultra":
		return LevelUltra, nil
	default:
		return 0, ErrUnknownFilter
	}
}

func (l FilterLevel) String() string {
	return [...]string{"low", "medium", "high", "ultra"}[l]
}

// Timescale changes playback speed, pitch and rate. 1 is unchanged.
type Timescale struct {
	Speed float64
	Pitch float64
	Rate  float64
}

// Filter is the full filter state sent to the node.
// Zero-valued LowPass and RotationHz mean the effect is disabled.
type Filter struct {
	Kind       FilterKind
	Level      FilterLevel
	Timescale  Timescale
	LowPass    float64
	RotationHz float64
}

// EmptyFilter returns the unity filter.
func EmptyFilter() Filter {
	return Filter{
		Kind:      FilterNone,
		Timescale: Timescale{Speed: 1, Pitch: 1, Rate: 1},
	}
}

var (
	nightcoreLevels = [...]Timescale{
		LevelLow:    {Speed: 1.15, Pitch: 1.15, Rate: 1},
		LevelMedium: {Speed: 1.20, Pitch: 1.20, Rate: 1},
		LevelHigh:   {Speed: 1.25, Pitch: 1.25, Rate: 1},
		LevelUltra:  {Speed: 1.35, Pitch: 1.30, Rate: 1},
	}
	daycoreLevels = [...]Timescale{
		LevelLow:    {Speed: 0.85, Pitch: 0.85, Rate: 1},
		LevelMedium: {Speed: 0.80, Pitch: 0.80, Rate: 1},
		LevelHigh:   {Speed: 0.75, Pitch: 0.75, Rate: 1},
		LevelUltra:  {Speed: 0.65, Pitch: 0.65, Rate: 1},
	}
	smoothingLevels = [...]float64{
		LevelLow:    1.1,
		LevelMedium: 1.35,
		LevelHigh:   1.75,
		LevelUltra:  2,
	}
)

const rotation8DHz = 0.2

// NewFilter builds the preset for the given kind and level.
// Filter8D has a single intensity and ignores level.
func NewFilter(kind FilterKind, level FilterLevel) (Filter, error) {
	if level < LevelLow || level > LevelUltra {
		return Filter{}, ErrUnknownFilter
	}

	f := EmptyFilter()
	f.Kind = kind
	f.Level = level

	switch kind {
	case FilterNone:
		f.Level = LevelLow
	case FilterNightcore:
		f.Timescale = nightcoreLevels[level]
	case FilterDaycore:
		f.Timescale = daycoreLevels[level]
	case FilterSmoothing:
		f.LowPass = smoothingLevels[level]
	case Filter8D:
		f.Level = LevelLow
		f.RotationHz = rotation8DHz
	default:
		return Filter{}, ErrUnknownFilter
	}
	return f, nil
}

// ParseFilter builds a preset from user-facing names.
func ParseFilter(name, level string) (Filter, error) {
	var kind FilterKind
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "nightcore":
		kind = FilterNightcore
	case "daycore":
		kind = FilterDaycore
	case "smoothing":
		kind = FilterSmoothing
	case "8d":
		kind = Filter8D
	case "none", "reset":
		kind = FilterNone
	default:
		return Filter{}, ErrUnknownFilter
	}

	l, err := ParseFilterLevel(level)
	if err != nil {
		return Filter{}, err
	}
	return NewFilter(kind, l)
}

// Name returns a display name such as "Nightcore (high)".
func (f Filter) Name() string {
	switch f.Kind {
	case FilterNightcore:
		return "Nightcore (" + f.Level.String() + ")"
	case FilterDaycore:
		return "Daycore (" + f.Level.String() + ")"
	case FilterSmoothing:
		return "Smoothing (" + f.Level.String() + ")"
	case Filter8D:
		return "8D"
	default:
		return "None"
	}
}
