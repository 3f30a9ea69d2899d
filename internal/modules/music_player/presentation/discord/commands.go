package discord

import "github.com/bwmarrin/discordgo"

// Command names.
const (
	commandPlay      = "play"
	commandJoin      = "join"
	commandLeave     = "leave"
	commandSkip      = "skip"
	commandStop      = "stop"
	commandPause     = "pause"
	commandResume    = "resume"
	commandSeek      = "seek"
	commandVolume    = "volume"
	commandFilter    = "filter"
	commandReset     = "reset"
	commandRepeat    = "repeat"
	commandShuffle   = "shuffle"
	commandQueue     = "queue"
	commandTrackInfo = "trackinfo"
	commandStats     = "stats"
	commandLyrics    = "lyrics"
)

// Commands returns all slash commands for the music player module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandPlay,
			Description: "Play a track or playlist from a link or search",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "query",
					Description:  "Link or search term",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "source",
					Description: "Where to search (defaults to YouTube)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "YouTube", Value: "youtube"},
						{Name: "YouTube Music", Value: "ytmusic"},
						{Name: "SoundCloud", Value: "soundcloud"},
					},
				},
			},
		},
		{
			Name:        commandJoin,
			Description: "Join your voice channel",
		},
		{
			Name:        commandLeave,
			Description: "Leave the voice channel",
		},
		{
			Name:        commandSkip,
			Description: "Skip the current track, or remove a queued one",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionInteger,
					Name:         "position",
					Description:  "Queue position to remove instead of skipping",
					Required:     false,
					MinValue:     floatPtr(1),
					Autocomplete: true,
				},
			},
		},
		{
			Name:        commandStop,
			Description: "Stop playback and leave",
		},
		{
			Name:        commandPause,
			Description: "Pause playback",
		},
		{
			Name:        commandResume,
			Description: "Resume playback",
		},
		{
			Name:        commandSeek,
			Description: "Jump to a position in the current track",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "position",
					Description: "Timestamp such as 1:30 or 90",
					Required:    true,
				},
			},
		},
		{
			Name:        commandVolume,
			Description: "Show or set the volume",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "value",
					Description: "0 to 200, or earrape",
					Required:    false,
				},
			},
		},
		{
			Name:        commandFilter,
			Description: "Apply an audio filter",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Filter to apply",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Nightcore", Value: "nightcore"},
						{Name: "Daycore", Value: "daycore"},
						{Name: "Smoothing", Value: "smoothing"},
						{Name: "8D", Value: "8d"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "level",
					Description: "Strength (defaults to medium)",
					Required:    false,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Low", Value: "low"},
						{Name: "Medium", Value: "medium"},
						{Name: "High", Value: "high"},
						{Name: "Ultra", Value: "ultra"},
					},
				},
			},
		},
		{
			Name:        commandReset,
			Description: "Remove all filters",
		},
		{
			Name:        commandRepeat,
			Description: "Toggle repeating the current track",
		},
		{
			Name:        commandShuffle,
			Description: "Shuffle the queue",
		},
		{
			Name:        commandQueue,
			Description: "Show the queue",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "page",
					Description: "Page number",
					Required:    false,
					MinValue:    floatPtr(1),
				},
			},
		},
		{
			Name:        commandTrackInfo,
			Description: "Show details of the current or a queued track",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionInteger,
					Name:         "position",
					Description:  "Queue position (defaults to the current track)",
					Required:     false,
					MinValue:     floatPtr(1),
					Autocomplete: true,
				},
			},
		},
		{
			Name:        commandStats,
			Description: "Show audio node statistics",
		},
		{
			Name:        commandLyrics,
			Description: "Show the lyrics of the current track",
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
