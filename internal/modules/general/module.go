// Package general provides the bot's housekeeping commands and keeps the
// settings store in step with the guilds the bot is in.
package general

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/general/application"
	"github.com/sglre6355/cherry/internal/modules/general/domain"
	"github.com/sglre6355/cherry/internal/modules/general/infrastructure"
	"github.com/sglre6355/cherry/internal/modules/general/presentation"
)

func init() {
	bot.Register(&GeneralModule{})
}

// GeneralModule provides /ping, /prefix, the info commands and guild bookkeeping.
type GeneralModule struct {
	pingHandler     *presentation.PingHandler
	prefixHandler   *presentation.PrefixHandler
	infoHandler     *presentation.InfoHandler
	coinflipHandler *presentation.CoinflipHandler
	guildHandler    *presentation.GuildHandler
}

// Name returns the module name.
func (m *GeneralModule) Name() string {
	return "general"
}

// adminOnly hides a command from members without Administrator.
var adminOnly int64 = discordgo.PermissionAdministrator

// Commands returns the slash commands for this module.
func (m *GeneralModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Replies with gateway and settings latency",
		},
		{
			Name:                     "prefix",
			Description:              "Show or change the prefix for this server",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "value",
					Description: "New prefix",
					MaxLength:   domain.MaxPrefixLength,
				},
			},
		},
		{
			Name:        "server",
			Description: "Show information about this server",
		},
		{
			Name:        "info",
			Description: "Show information about you or another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to describe",
				},
			},
		},
		{
			Name:        "coinflip",
			Description: "Flip a coin",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *GeneralModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"ping":     m.pingHandler.Handle,
		"prefix":   m.prefixHandler.Handle,
		"server":   m.infoHandler.HandleServer,
		"info":     m.infoHandler.HandleInfo,
		"coinflip": m.coinflipHandler.Handle,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *GeneralModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.guildHandler.HandleGuildCreate,
		m.guildHandler.HandleGuildDelete,
	}
}

// Init initializes the module.
func (m *GeneralModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil || deps.Settings == nil {
		return errors.New("general module requires a session and settings store")
	}

	gateway := deps.Session.HeartbeatLatency
	fallback := "!"
	if deps.Config != nil {
		fallback = deps.Config.DefaultPrefix
	}

	prefixes := application.NewPrefixInteractor(deps.Settings, fallback)
	directory := infrastructure.NewDiscordDirectory(deps.Session)

	m.pingHandler = presentation.NewPingHandler(application.NewPingInteractor(deps.Settings, gateway))
	m.prefixHandler = presentation.NewPrefixHandler(prefixes)
	m.infoHandler = presentation.NewInfoHandler(application.NewInfoInteractor(directory, prefixes))
	m.coinflipHandler = presentation.NewCoinflipHandler(application.NewCoinInteractor())
	m.guildHandler = presentation.NewGuildHandler(application.NewGuildInteractor(deps.Settings))
	return nil
}

// Shutdown cleans up module resources.
func (m *GeneralModule) Shutdown() error {
	return nil
}
