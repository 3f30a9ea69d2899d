package bot

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sglre6355/cherry/internal/settings"
)

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config   *Config
	session  *discordgo.Session
	settings settings.Store
	registry *prometheus.Registry
	metrics  *commandMetrics
	modules  []Module
	handlers map[string]InteractionHandler
	commands map[string]*discordgo.ApplicationCommand

	// memberPermissions resolves a message author's channel permissions.
	memberPermissions func(s *discordgo.Session, m *discordgo.MessageCreate) (int64, error)
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Bot{
		config:   cfg,
		registry: registry,
		metrics:  newCommandMetrics(registry),
		modules:  make([]Module, 0),
		handlers: make(map[string]InteractionHandler),
		commands: make(map[string]*discordgo.ApplicationCommand),

		memberPermissions: statePermissions,
	}
}

// LoadModules loads the enabled modules from the global registry.
func (b *Bot) LoadModules() error {
	return b.loadModulesFrom(globalRegistry)
}

func (b *Bot) loadModulesFrom(reg *Registry) error {
	modules, err := reg.Select(b.config.EnabledModules)
	if err != nil {
		return fmt.Errorf("failed to load modules: %w", err)
	}
	b.modules = modules
	return nil
}

// Registry returns the Prometheus registry served on /metrics.
func (b *Bot) Registry() *prometheus.Registry {
	return b.registry
}

// Settings returns the settings store. Nil before Start.
func (b *Bot) Settings() settings.Store {
	return b.settings
}

// Start loads module configuration, opens the settings store, connects to
// Discord, initializes modules and registers commands.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.loadModuleConfigs(); err != nil {
		return err
	}

	store, err := settings.Open(ctx, b.config.Settings)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	b.settings = store
	slog.Info("opened settings store", "backend", b.config.Settings.Backend)

	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	// Message content is privileged and must be enabled for prefix commands.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
	b.session = session

	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessage)

	// Modules need the bot user from the ready state.
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.initModules(); err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	b.buildHandlerMap()
	b.indexCommands()
	b.registerEventHandlers()

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	if b.settings != nil {
		if err := b.settings.Close(); err != nil {
			slog.Warn("failed to close settings store", "error", err)
		}
	}

	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// loadModuleConfigs calls LoadConfig on every ConfigurableModule.
func (b *Bot) loadModuleConfigs() error {
	for _, mod := range b.modules {
		configurable, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := configurable.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}
	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Session:  b.session,
		Config:   b.config,
		Settings: b.settings,
		Metrics:  b.registry,
	}

	for _, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// buildHandlerMap builds the command name to handler mapping.
func (b *Bot) buildHandlerMap() {
	for _, mod := range b.modules {
		maps.Copy(b.handlers, mod.CommandHandlers())
	}
}

// indexCommands maps command names to their definitions for prefix commands.
func (b *Bot) indexCommands() {
	for _, cmd := range b.collectCommands() {
		b.commands[cmd.Name] = cmd
	}
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

// collectCommands gathers all commands from loaded modules.
func (b *Bot) collectCommands() []*discordgo.ApplicationCommand {
	var commands []*discordgo.ApplicationCommand
	for _, mod := range b.modules {
		commands = append(commands, mod.Commands()...)
	}
	return commands
}

// registerCommands replaces the global command set with the modules' commands.
func (b *Bot) registerCommands() error {
	commands := b.collectCommands()

	registered, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID,
		"", // Empty string registers commands globally
		commands,
	)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	for _, cmd := range registered {
		slog.Debug("registered command", "command", cmd.Name)
	}

	return nil
}

// Embed colors for responses.
const (
	colorYellow = 0xFFFF00
	colorRed    = 0xFF0000
)

// handleInteraction routes incoming commands to the appropriate handler.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	b.dispatch(s, i, NewDiscordResponder(s, i.Interaction))
}

func (b *Bot) dispatch(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) {
	cmdName := i.ApplicationCommandData().Name
	handler, ok := b.handlers[cmdName]
	if !ok {
		slog.Warn("found no handler for command", "command", cmdName)
		b.metrics.observe(cmdName, outcomeUnknown, 0)
		respondWithEmbed(r, "Unknown Command", "This command is not recognized.", colorYellow)
		return
	}

	start := time.Now()
	if err := handler(s, i, r); err != nil {
		b.metrics.observe(cmdName, outcomeError, time.Since(start))
		slog.Error("failed to handle command", "command", cmdName, "error", err)
		respondWithEmbed(r, "Error", "An error occurred while processing your command.", colorRed)
		return
	}
	b.metrics.observe(cmdName, outcomeOK, time.Since(start))
}

// respondWithEmbed sends an embed response to an interaction.
func respondWithEmbed(r Responder, title, description string, color int) {
	err := r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       title,
					Description: description,
					Color:       color,
				},
			},
		},
	})
	if err != nil {
		slog.Error("failed to send embed response", "error", err)
	}
}
