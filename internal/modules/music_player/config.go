package music_player

import "time"

// Config holds the music player module configuration.
type Config struct {
	LavalinkAddress  string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
	LavalinkSecure   bool   `env:"LAVALINK_SECURE" envDefault:"false"`

	// StatsInterval is how often node stats are sampled.
	StatsInterval time.Duration `env:"LAVALINK_STATS_INTERVAL" envDefault:"30s"`

	// LyricsURL is the base URL of a lyrics.ovh compatible API.
	LyricsURL string `env:"LYRICS_API_URL" envDefault:"https://api.lyrics.ovh"`
}
