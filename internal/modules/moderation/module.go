// Package moderation provides the server moderation commands.
package moderation

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/moderation/application"
	"github.com/sglre6355/cherry/internal/modules/moderation/infrastructure"
	"github.com/sglre6355/cherry/internal/modules/moderation/presentation"
)

func init() {
	bot.Register(&ModerationModule{})
}

// ModerationModule provides /purge, /kick, /ban, /banlist, /pardon, /role and /invite.
type ModerationModule struct {
	commandHandlers *presentation.CommandHandlers
}

// Name returns the module name.
func (m *ModerationModule) Name() string {
	return "moderation"
}

// Commands returns the slash commands for this module.
func (m *ModerationModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *ModerationModule) CommandHandlers() map[string]bot.InteractionHandler {
	return m.commandHandlers.Handlers()
}

// EventHandlers returns the event handlers for this module.
func (m *ModerationModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *ModerationModule) Init(deps bot.ModuleDependencies) error {
	if deps.Session == nil {
		return errors.New("moderation module requires a Discord session")
	}

	guild := infrastructure.NewDiscordGuild(deps.Session)
	m.commandHandlers = presentation.NewCommandHandlers(application.NewModerationInteractor(guild))
	return nil
}

// Shutdown cleans up module resources.
func (m *ModerationModule) Shutdown() error {
	return nil
}
