package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

const (
	// Discord limits for autocomplete choices.
	maxChoices     = 25
	maxChoiceName  = 100
	maxChoiceValue = 100

	// Discord drops autocomplete replies after three seconds.
	autocompleteTimeout = 2500 * time.Millisecond
)

// Suggester backs autocomplete suggestions.
type Suggester interface {
	SearchSuggestions(
		ctx context.Context,
		input usecases.SearchSuggestionsInput,
	) (*usecases.SearchSuggestionsOutput, error)
	QueueSuggestions(ctx context.Context, guildID snowflake.ID, limit int) ([]usecases.QueueEntry, error)
}

// AutocompleteHandler handles autocomplete requests.
type AutocompleteHandler struct {
	suggester Suggester
}

// NewAutocompleteHandler creates a new AutocompleteHandler.
func NewAutocompleteHandler(suggester Suggester) *AutocompleteHandler {
	return &AutocompleteHandler{
		suggester: suggester,
	}
}

// HandleInteraction is the discordgo event handler for autocomplete interactions.
func (h *AutocompleteHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return
	}

	choices, ok := h.Choices(i)
	if !ok {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Warn("failed to send autocomplete choices", "guild", i.GuildID, "error", err)
	}
}

// Choices builds the choices for an autocomplete interaction.
// It reports false for commands without autocomplete.
func (h *AutocompleteHandler) Choices(i *discordgo.InteractionCreate) ([]*discordgo.ApplicationCommandOptionChoice, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), autocompleteTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	switch data.Name {
	case commandPlay:
		return h.playChoices(ctx, optionMap(data.Options)), true
	case commandSkip, commandTrackInfo:
		return h.queueChoices(ctx, i.GuildID), true
	default:
		return nil, false
	}
}

func (h *AutocompleteHandler) playChoices(
	ctx context.Context,
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption,
) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0)

	// Don't search for very short queries
	query := stringOption(opts, "query")
	if len([]rune(query)) < 2 {
		return choices
	}

	output, err := h.suggester.SearchSuggestions(ctx, usecases.SearchSuggestionsInput{
		Query:  query,
		Source: domain.ParseSearchSource(stringOption(opts, "source")),
		Limit:  maxChoices,
	})
	if err != nil {
		slog.Debug("failed to load search suggestions", "error", err)
		return choices
	}

	if output.IsPlaylist && len(output.PlaylistURL) <= maxChoiceValue {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name: truncate(
				fmt.Sprintf("📋 %s (%d tracks)", output.PlaylistName, output.TrackCount),
				maxChoiceName,
			),
			Value: output.PlaylistURL,
		})
	}
	for idx, track := range output.Tracks {
		// Choices carry the link; tracks without a usable one are skipped.
		if track.URI == "" || len(track.URI) > maxChoiceValue {
			continue
		}

		var name string
		if output.IsPlaylist {
			name = fmt.Sprintf("🎵 %d. %s - %s", idx+1, track.Title, track.Artist)
		} else {
			name = fmt.Sprintf("🎵 %s - %s", track.Title, track.Artist)
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(name, maxChoiceName),
			Value: track.URI,
		})
	}

	return choices
}

func (h *AutocompleteHandler) queueChoices(
	ctx context.Context,
	rawGuildID string,
) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0)

	guildID, err := snowflake.Parse(rawGuildID)
	if err != nil {
		slog.Warn("failed to parse guild ID in autocomplete", "error", err, "guild", rawGuildID)
		return choices
	}

	entries, err := h.suggester.QueueSuggestions(ctx, guildID, maxChoices)
	if err != nil {
		slog.Debug("failed to load queue suggestions", "guild", guildID, "error", err)
		return choices
	}

	for _, entry := range entries {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(fmt.Sprintf("%d. %s", entry.Position, entry.Track.Title), maxChoiceName),
			Value: entry.Position,
		})
	}
	return choices
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
