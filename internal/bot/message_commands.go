package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// prefixTimeout bounds the settings lookup made for every guild message.
const prefixTimeout = 2 * time.Second

var (
	errMissingArgument  = errors.New("missing argument")
	errInvalidArgument  = errors.New("invalid argument")
	errTooManyArguments = errors.New("too many arguments")
)

// handleMessage runs prefix commands through the slash command handlers.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.routeMessage(s, m, NewMessageResponder(s, m.Message))
}

func (b *Bot) routeMessage(s *discordgo.Session, m *discordgo.MessageCreate, r Responder) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	prefix := b.prefixFor(m.GuildID)
	name, args, ok := splitCommand(m.Content, prefix)
	if !ok {
		return
	}
	cmd, ok := b.commands[name]
	if !ok {
		return
	}

	var permissions int64
	if required := cmd.DefaultMemberPermissions; required != nil && *required != 0 {
		granted, err := b.memberPermissions(s, m)
		if err != nil {
			slog.Warn("failed to resolve member permissions", "guild", m.GuildID, "error", err)
		}
		if granted&*required != *required {
			respondWithEmbed(r, "Missing Permissions", "You don't have permission to use this command.", colorRed)
			return
		}
		permissions = granted
	}

	options, err := bindOptions(cmd.Options, args)
	if err != nil {
		slog.Debug("rejected prefix command arguments", "command", cmd.Name, "error", err)
		respondWithEmbed(r, "Invalid Arguments", "Usage: `"+usage(prefix, cmd)+"`", colorYellow)
		return
	}

	b.dispatch(s, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        m.ID,
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			Member: &discordgo.Member{
				GuildID:     m.GuildID,
				User:        m.Author,
				Permissions: permissions,
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    cmd.Name,
				Options: options,
			},
		},
	}, r)
}

// prefixFor returns the guild's stored prefix or the configured default.
func (b *Bot) prefixFor(guildID string) string {
	fallback := b.config.DefaultPrefix
	if b.settings == nil {
		return fallback
	}

	id, err := snowflake.Parse(guildID)
	if err != nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(context.Background(), prefixTimeout)
	defer cancel()

	prefix, err := b.settings.GetPrefix(ctx, id)
	if err != nil {
		slog.Warn("failed to get prefix, using default", "guild", guildID, "error", err)
		return fallback
	}
	if prefix == "" {
		return fallback
	}
	return prefix
}

// statePermissions computes the author's channel permissions from the
// message's partial member and the cached guild and channel.
func statePermissions(s *discordgo.Session, m *discordgo.MessageCreate) (int64, error) {
	return s.State.MessagePermissions(m.Message)
}

// splitCommand separates "<prefix><name> <args>" into a lowercased name and
// the untouched argument text.
func splitCommand(content, prefix string) (name, args string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", "", false
	}

	name, args = nextToken(content[len(prefix):])
	if name == "" {
		return "", "", false
	}
	return strings.ToLower(name), args, true
}

// nextToken returns the first whitespace-separated word and the trimmed remainder.
func nextToken(s string) (token, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], strings.TrimSpace(s[end:])
}

// bindOptions maps positional arguments onto a command's options in order.
// A free-text string option takes the rest of the line. Optional options
// whose value does not fit are left unset.
func bindOptions(
	defs []*discordgo.ApplicationCommandOption,
	args string,
) ([]*discordgo.ApplicationCommandInteractionDataOption, error) {
	var options []*discordgo.ApplicationCommandInteractionDataOption
	rest := strings.TrimSpace(args)

	for _, def := range defs {
		if rest == "" {
			if def.Required {
				return nil, fmt.Errorf("%w: %s", errMissingArgument, def.Name)
			}
			continue
		}

		if def.Type == discordgo.ApplicationCommandOptionString && len(def.Choices) == 0 {
			options = append(options, dataOption(def, rest))
			rest = ""
			continue
		}

		token, tail := nextToken(rest)
		value, ok := convertArgument(def, token)
		if !ok {
			if def.Required {
				return nil, fmt.Errorf("%w: %s", errInvalidArgument, def.Name)
			}
			continue
		}
		options = append(options, dataOption(def, value))
		rest = tail
	}

	if rest != "" {
		return nil, fmt.Errorf("%w: %q", errTooManyArguments, rest)
	}
	return options, nil
}

func dataOption(def *discordgo.ApplicationCommandOption, value any) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  def.Name,
		Type:  def.Type,
		Value: value,
	}
}

// convertArgument converts a word to the value type the gateway would send.
func convertArgument(def *discordgo.ApplicationCommandOption, token string) (any, bool) {
	switch def.Type {
	case discordgo.ApplicationCommandOptionString:
		for _, choice := range def.Choices {
			value, ok := choice.Value.(string)
			if ok && (strings.EqualFold(token, value) || strings.EqualFold(token, choice.Name)) {
				return value, true
			}
		}
		return nil, false
	case discordgo.ApplicationCommandOptionInteger:
		n, err := strconv.Atoi(token)
		if err != nil || outOfRange(def, float64(n)) {
			return nil, false
		}
		// Integers arrive as JSON numbers.
		return float64(n), true
	case discordgo.ApplicationCommandOptionNumber:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil || outOfRange(def, f) {
			return nil, false
		}
		return f, true
	case discordgo.ApplicationCommandOptionBoolean:
		v, err := strconv.ParseBool(token)
		if err != nil {
			return nil, false
		}
		return v, true
	case discordgo.ApplicationCommandOptionUser, discordgo.ApplicationCommandOptionMentionable:
		return mentionID(token, "@")
	case discordgo.ApplicationCommandOptionRole:
		return mentionID(token, "@&")
	case discordgo.ApplicationCommandOptionChannel:
		return mentionID(token, "#")
	default:
		return nil, false
	}
}

// mentionID accepts a mention such as <@123>, <@!123> or <@&123>, or a bare
// ID, and returns the ID the way the gateway sends it.
func mentionID(token, sigil string) (any, bool) {
	if strings.HasPrefix(token, "<"+sigil) && strings.HasSuffix(token, ">") {
		token = strings.TrimPrefix(token[len(sigil)+1:len(token)-1], "!")
	}
	if _, err := snowflake.Parse(token); err != nil {
		return nil, false
	}
	return token, true
}

func outOfRange(def *discordgo.ApplicationCommandOption, v float64) bool {
	if def.MinValue != nil && v < *def.MinValue {
		return true
	}
	return def.MaxValue != 0 && v > def.MaxValue
}

// usage renders a command's prefix syntax, such as "!skip [position]".
func usage(prefix string, cmd *discordgo.ApplicationCommand) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(cmd.Name)
	for _, opt := range cmd.Options {
		if opt.Required {
			fmt.Fprintf(&sb, " <%s>", opt.Name)
		} else {
			fmt.Fprintf(&sb, " [%s]", opt.Name)
		}
	}
	return sb.String()
}
