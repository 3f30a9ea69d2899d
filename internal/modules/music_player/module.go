package music_player

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/music_player/application"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/infrastructure"
	"github.com/sglre6355/cherry/internal/modules/music_player/presentation/discord"
)

func init() {
	bot.Register(&MusicPlayerModule{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*MusicPlayerModule)(nil)

// MusicPlayerModule provides music playback commands.
type MusicPlayerModule struct {
	config          *Config
	commandHandlers *discord.CommandHandlers
	autocomplete    *discord.AutocompleteHandler
	eventHandlers   *discord.EventHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter

	// Per-guild serialization of commands and node callbacks
	workers  *infrastructure.GuildWorkers
	eventBus *infrastructure.EventBus

	// Context for the stats poller
	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// Commands returns the slash commands for this module.
func (m *MusicPlayerModule) Commands() []*discordgo.ApplicationCommand {
	return discord.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicPlayerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return m.commandHandlers.Handlers()
}

// EventHandlers returns the event handlers for this module.
func (m *MusicPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.eventHandlers.HandleVoiceServerUpdate,
		m.eventHandlers.HandleVoiceStateUpdate,
		m.autocomplete.HandleInteraction,
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *MusicPlayerModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil || deps.Settings == nil || deps.Metrics == nil {
		return errors.New("music_player module requires a session, settings store and metrics registry")
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(m.ctx, deps.Session, infrastructure.LavalinkConfig{
		Address:  m.config.LavalinkAddress,
		Password: m.config.LavalinkPassword,
		Secure:   m.config.LavalinkSecure,
	})
	if err != nil {
		m.cancel()
		return err
	}
	m.lavalinkAdapter = lavalinkAdapter

	// Node callbacks run on the same guild lanes as commands.
	m.workers = infrastructure.NewGuildWorkers()
	m.eventBus = infrastructure.NewEventBus(m.workers)
	lavalinkAdapter.SetEventPublisher(m.eventBus)

	// Create infrastructure
	repo := infrastructure.NewMemoryRepository()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	userInfo := infrastructure.NewDiscordUserInfoProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session, userInfo)
	nodeStats := infrastructure.NewNodeStats(deps.Metrics)

	// Create services
	sessions := usecases.NewSessionRegistry(repo, lavalinkAdapter, lavalinkAdapter)
	repeat := usecases.NewRepeatMode(deps.Settings)
	playback := usecases.NewPlaybackService(
		sessions,
		lavalinkAdapter,
		lavalinkAdapter,
		voiceState,
		repeat,
		m.workers,
	)
	stats := usecases.NewStatsService(nodeStats, sessions)
	suggestions := usecases.NewAutocompleteService(sessions, lavalinkAdapter, m.workers)
	lyrics := usecases.NewLyricsService(sessions, infrastructure.NewLyricsClient(m.config.LyricsURL), m.workers)

	playbackHandler := application.NewPlaybackEventHandler(
		sessions,
		lavalinkAdapter,
		repeat,
		notifier,
		nodeStats,
		m.eventBus,
	)
	if err := playbackHandler.Start(); err != nil {
		_ = m.Shutdown()
		return err
	}

	go lavalinkAdapter.RunStatsPoller(m.ctx, m.config.StatsInterval)

	// Create presentation handlers
	m.commandHandlers = discord.NewCommandHandlers(playback, stats, lyrics)
	m.autocomplete = discord.NewAutocompleteHandler(suggestions)
	m.eventHandlers = discord.NewEventHandlers(deps.Session.State.User.ID, lavalinkAdapter, playback)

	slog.Info("music_player module initialized with Lavalink")

	return nil
}

// Shutdown cleans up module resources.
func (m *MusicPlayerModule) Shutdown() error {
	// Stop the stats poller first so nothing new is published
	if m.cancel != nil {
		m.cancel()
	}

	if m.eventBus != nil {
		m.eventBus.Close()
	}

	// Waits for in-flight guild work
	if m.workers != nil {
		m.workers.Close()
	}

	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Close()
	}

	return nil
}
