package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/bot"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

const guildOnlyMessage = "This command can only be used in a server."

const (
	// commandTimeout covers a voice handshake plus a track load.
	commandTimeout = 20 * time.Second
	queuePageSize  = 10

	maxEmbedDescription = 4096
)

// Playback is the playback service as driven by the command handlers.
type Playback interface {
	Play(ctx context.Context, input usecases.PlayInput) (*usecases.PlayOutput, error)
	Join(ctx context.Context, input usecases.JoinInput) (*usecases.JoinOutput, error)
	Leave(ctx context.Context, input usecases.ControlInput) error
	Skip(ctx context.Context, input usecases.SkipInput) (*usecases.SkipOutput, error)
	Stop(ctx context.Context, input usecases.ControlInput) error
	Pause(ctx context.Context, input usecases.ControlInput) error
	Resume(ctx context.Context, input usecases.ControlInput) error
	Seek(ctx context.Context, input usecases.SeekInput) error
	SetFilter(ctx context.Context, input usecases.SetFilterInput) (domain.Filter, error)
	ResetFilter(ctx context.Context, input usecases.ControlInput) error
	SetVolume(ctx context.Context, input usecases.SetVolumeInput) (domain.Volume, error)
	GetVolume(ctx context.Context, input usecases.ControlInput) (domain.Volume, error)
	ToggleRepeat(ctx context.Context, input usecases.ControlInput) (bool, error)
	Shuffle(ctx context.Context, input usecases.ControlInput) error
	Queue(ctx context.Context, input usecases.QueueInput) (*usecases.QueueOutput, error)
	TrackInfo(ctx context.Context, input usecases.TrackInfoInput) (*domain.Track, error)
}

// StatsReporter reports node load.
type StatsReporter interface {
	Stats() *usecases.StatsOutput
}

// LyricsFinder looks up the lyrics of the current track.
type LyricsFinder interface {
	Lyrics(ctx context.Context, input usecases.LyricsInput) (*usecases.LyricsOutput, error)
}

// CommandHandlers holds all the command handlers.
type CommandHandlers struct {
	playback Playback
	stats    StatsReporter
	lyrics   LyricsFinder
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(playback Playback, stats StatsReporter, lyrics LyricsFinder) *CommandHandlers {
	return &CommandHandlers{
		playback: playback,
		stats:    stats,
		lyrics:   lyrics,
	}
}

// Handlers maps every command name to its handler.
func (h *CommandHandlers) Handlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		commandPlay:      h.HandlePlay,
		commandJoin:      h.HandleJoin,
		commandLeave:     h.HandleLeave,
		commandSkip:      h.HandleSkip,
		commandStop:      h.HandleStop,
		commandPause:     h.HandlePause,
		commandResume:    h.HandleResume,
		commandSeek:      h.HandleSeek,
		commandVolume:    h.HandleVolume,
		commandFilter:    h.HandleFilter,
		commandReset:     h.HandleReset,
		commandRepeat:    h.HandleRepeat,
		commandShuffle:   h.HandleShuffle,
		commandQueue:     h.HandleQueue,
		commandTrackInfo: h.HandleTrackInfo,
		commandStats:     h.HandleStats,
		commandLyrics:    h.HandleLyrics,
	}
}

// HandlePlay handles the /play command.
func (h *CommandHandlers) HandlePlay(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	input := usecases.PlayInput{
		GuildID:       target.guildID,
		UserID:        target.userID,
		TextChannelID: target.channelID,
		Query:         stringOption(opts, "query"),
		Source:        domain.ParseSearchSource(stringOption(opts, "source")),
	}

	// Loading can outlast the interaction deadline.
	if err := r.Defer(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := h.playback.Play(ctx, input)
	if err != nil {
		return handleError(r, err)
	}

	return respondSuccess(r, playDescription(output))
}

func playDescription(output *usecases.PlayOutput) string {
	first := output.Tracks[0]

	if output.PlaylistName != "" {
		if output.Started {
			return fmt.Sprintf(
				"Playing %s and added **%d tracks** from playlist **%s** to the queue.",
				trackLink(first), len(output.Tracks)-1, output.PlaylistName,
			)
		}
		return fmt.Sprintf(
			"Added **%d tracks** from playlist **%s** to the queue.",
			len(output.Tracks), output.PlaylistName,
		)
	}

	if output.Started {
		return fmt.Sprintf("Playing %s.", trackLink(first))
	}
	return fmt.Sprintf("Added %s to the queue at position **%d**.", trackLink(first), output.Position)
}

// HandleJoin handles the /join command.
func (h *CommandHandlers) HandleJoin(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := h.playback.Join(ctx, usecases.JoinInput{
		GuildID:       target.guildID,
		UserID:        target.userID,
		TextChannelID: target.channelID,
	})
	if err != nil {
		return handleError(r, err)
	}

	if output.AlreadyJoined {
		return respondSuccess(r, fmt.Sprintf("Already connected to <#%d>.", output.VoiceChannelID))
	}
	return respondSuccess(r, fmt.Sprintf("Connected to <#%d>.", output.VoiceChannelID))
}

// HandleLeave handles the /leave command.
func (h *CommandHandlers) HandleLeave(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.simple(i, r, h.playback.Leave, "Disconnected.")
}

// HandleStop handles the /stop command.
func (h *CommandHandlers) HandleStop(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.simple(i, r, h.playback.Stop, "Stopped playback.")
}

// HandlePause handles the /pause command.
func (h *CommandHandlers) HandlePause(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.simple(i, r, h.playback.Pause, "**Paused** ⏸️")
}

// HandleResume handles the /resume command.
func (h *CommandHandlers) HandleResume(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.simple(i, r, h.playback.Resume, "**Resumed** ▶️")
}

// HandleShuffle handles the /shuffle command.
func (h *CommandHandlers) HandleShuffle(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.simple(i, r, h.playback.Shuffle, "**Shuffled** 🔀")
}

// HandleReset handles the /reset command.
func (h *CommandHandlers) HandleReset(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	return h.simple(i, r, h.playback.ResetFilter, "Removed all filters.")
}

// simple runs a session control that replies with a fixed message.
func (h *CommandHandlers) simple(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	run func(ctx context.Context, input usecases.ControlInput) error,
	message string,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := run(ctx, target.control()); err != nil {
		return handleError(r, err)
	}
	return respondSuccess(r, message)
}

// HandleSkip handles the /skip command.
func (h *CommandHandlers) HandleSkip(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := h.playback.Skip(ctx, usecases.SkipInput{
		GuildID:  target.guildID,
		UserID:   target.userID,
		Position: intOption(opts, "position"),
	})
	if err != nil {
		return handleError(r, err)
	}

	if output.Removed {
		return respondSuccess(r, fmt.Sprintf("Dequeued %s.", trackLink(output.Skipped)))
	}
	if output.Next == nil {
		return respondSuccess(r, fmt.Sprintf("**Skipped** ⏭️ %s\nThe queue is empty.", trackLink(output.Skipped)))
	}
	return respondSuccess(r, fmt.Sprintf("**Skipped** ⏭️ %s", trackLink(output.Skipped)))
}

// HandleSeek handles the /seek command.
func (h *CommandHandlers) HandleSeek(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	position, err := parseTimestamp(stringOption(opts, "position"))
	if err != nil {
		return respondError(r, "Please enter a valid timestamp.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	err = h.playback.Seek(ctx, usecases.SeekInput{
		GuildID:  target.guildID,
		UserID:   target.userID,
		Position: position,
	})
	if err != nil {
		return handleError(r, err)
	}

	if position == 0 {
		return respondSuccess(r, "Jumped to the beginning.")
	}
	return respondSuccess(r, fmt.Sprintf("Jumped to %s.", domain.FormatDuration(position)))
}

// parseTimestamp accepts seconds, mm:ss or hh:mm:ss.
func parseTimestamp(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	var total time.Duration
	for idx, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		// Every field but the first is bounded by its unit.
		if idx > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid timestamp %q", s)
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second, nil
}

// HandleVolume handles the /volume command.
func (h *CommandHandlers) HandleVolume(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	value := stringOption(opts, "value")
	if value == "" {
		volume, err := h.playback.GetVolume(ctx, target.control())
		if err != nil {
			return handleError(r, err)
		}
		return respondSuccess(r, currentVolumeMessage(volume))
	}

	volume, err := h.playback.SetVolume(ctx, usecases.SetVolumeInput{
		GuildID: target.guildID,
		UserID:  target.userID,
		Volume:  value,
	})
	if err != nil {
		return handleError(r, err)
	}
	return respondSuccess(r, setVolumeMessage(volume))
}

func volumeIcon(v domain.Volume) string {
	if v >= domain.StandardVolume {
		return "🔊"
	}
	return "🔉"
}

func currentVolumeMessage(v domain.Volume) string {
	switch v {
	case domain.MinVolume:
		return "I'm currently **muted** 🔇"
	case domain.EarrapeVolume:
		return "I'm currently on **EARRAPE** 🤯"
	default:
		return fmt.Sprintf("I'm currently on **%d** %s", v, volumeIcon(v))
	}
}

func setVolumeMessage(v domain.Volume) string {
	switch v {
	case domain.MinVolume:
		return "**Muted** 🔇"
	case domain.EarrapeVolume:
		return "My volume is now set to **EARRAPE** 🤯"
	default:
		return fmt.Sprintf("My volume is now set to **%d** %s", v, volumeIcon(v))
	}
}

// HandleFilter handles the /filter command.
func (h *CommandHandlers) HandleFilter(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	filter, err := h.playback.SetFilter(ctx, usecases.SetFilterInput{
		GuildID: target.guildID,
		UserID:  target.userID,
		Name:    stringOption(opts, "name"),
		Level:   stringOption(opts, "level"),
	})
	if err != nil {
		return handleError(r, err)
	}
	return respondSuccess(r, fmt.Sprintf("Applied **%s** filter.", filter.Name()))
}

// HandleRepeat handles the /repeat command.
func (h *CommandHandlers) HandleRepeat(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	target, ok := parseTarget(i)
	if !ok {
		return respondError(r, guildOnlyMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	enabled, err := h.playback.ToggleRepeat(ctx, target.control())
	if errors.Is(err, usecases.ErrPersistenceFailed) {
		return respondError(r, "Couldn't set repeat. Please try again later.")
	}
	if err != nil {
		return handleError(r, err)
	}

	if enabled {
		return respondSuccess(r, "**Repeat on** ✅")
	}
	return respondSuccess(r, "**Repeat off** ❌")
}

// HandleQueue handles the /queue command.
func (h *CommandHandlers) HandleQueue(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	page := max(intOption(opts, "page"), 1)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := h.playback.Queue(ctx, usecases.QueueInput{GuildID: guildID, Limit: -1})
	if err != nil {
		return handleError(r, err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{queueEmbed(output, page)},
		},
	})
}

func queueEmbed(output *usecases.QueueOutput, page int) *discordgo.MessageEmbed {
	totalPages := max((output.Total+queuePageSize-1)/queuePageSize, 1)
	page = min(page, totalPages)

	title := "Queue"
	if output.Repeat {
		title = "Queue 🔂"
	}
	embed := &discordgo.MessageEmbed{Title: title, Color: colorSuccess}

	var sb strings.Builder
	if output.Current != nil {
		sb.WriteString("### Now Playing\n")
		fmt.Fprintf(&sb, "%s `%s`", trackLink(output.Current), output.Current.FormattedDuration())
		if output.State == domain.StatePaused {
			sb.WriteString(" ⏸️")
		}
		sb.WriteString("\n")
	}

	start := (page - 1) * queuePageSize
	end := min(start+queuePageSize, len(output.Entries))
	if start < end {
		sb.WriteString("### Up Next\n")
		for _, entry := range output.Entries[start:end] {
			writeTrackLine(&sb, entry.Position, entry.Track)
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("The queue is currently empty.")
	}
	embed.Description = sb.String()

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf(
			"Page %d/%d • %d tracks (%s) • Volume %d%% • Filter: %s",
			page, totalPages, output.Total, domain.FormatDuration(output.Duration),
			output.Volume, output.Filter.Name(),
		),
	}
	return embed
}

// HandleTrackInfo handles the /trackinfo command.
func (h *CommandHandlers) HandleTrackInfo(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, guildOnlyMessage)
	}

	opts := optionMap(i.ApplicationCommandData().Options)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	track, err := h.playback.TrackInfo(ctx, usecases.TrackInfoInput{
		GuildID:  guildID,
		Position: intOption(opts, "position"),
	})
	if err != nil {
		return handleError(r, err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{trackInfoEmbed(track)},
		},
	})
}

func trackInfoEmbed(track *domain.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: track.Title,
		URL:   track.URI,
		Color: track.Source().Color(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Artist", Value: orDash(track.Artist), Inline: true},
			{Name: "Duration", Value: track.FormattedDuration(), Inline: true},
			{Name: "Source", Value: orDash(track.SourceName), Inline: true},
		},
	}
	if track.RequesterID != 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Requested by",
			Value:  fmt.Sprintf("<@%d>", track.RequesterID),
			Inline: true,
		})
	}
	if track.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.ArtworkURL}
	}
	return embed
}

// HandleLyrics handles the /lyrics command.
func (h *CommandHandlers) HandleLyrics(
	_ *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, guildOnlyMessage)
	}

	if err := r.Defer(false); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	output, err := h.lyrics.Lyrics(ctx, usecases.LyricsInput{GuildID: guildID})
	if errors.Is(err, usecases.ErrLyricsUnavailable) {
		slog.Warn("lyrics lookup failed", "guild", guildID, "error", err)
		return respondError(r, "Couldn't fetch lyrics. Please try again later.")
	}
	if err != nil {
		return handleError(r, err)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{lyricsEmbed(output)},
		},
	})
}

func lyricsEmbed(output *usecases.LyricsOutput) *discordgo.MessageEmbed {
	description := fmt.Sprintf("**%s**\n%s", output.Track.Title, output.Lyrics)
	if runes := []rune(description); len(runes) > maxEmbedDescription {
		description = string(runes[:maxEmbedDescription-1]) + "…"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Lyrics 📜",
		Description: description,
		Color:       colorSuccess,
	}
	if output.Track.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: output.Track.ArtworkURL}
	}
	return embed
}

// HandleStats handles the /stats command.
func (h *CommandHandlers) HandleStats(
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	output := h.stats.Stats()
	if !output.HasNode {
		return respondError(r, "No stats received from the audio node yet.")
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{statsEmbed(output)},
		},
	})
}

func statsEmbed(output *usecases.StatsOutput) *discordgo.MessageEmbed {
	const mib = 1 << 20
	node := output.Node

	return &discordgo.MessageEmbed{
		Title: "Audio node",
		Color: colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Players",
				Value:  fmt.Sprintf("%d (%d playing)", node.Players, node.PlayingPlayers),
				Inline: true,
			},
			{Name: "Sessions", Value: strconv.Itoa(output.Sessions), Inline: true},
			{Name: "Uptime", Value: node.Uptime.Truncate(time.Second).String(), Inline: true},
			{
				Name: "CPU",
				Value: fmt.Sprintf("%d cores, system %.1f%%, node %.1f%%",
					node.CPUCores, node.SystemLoad*100, node.LavalinkLoad*100),
			},
			{
				Name: "Memory",
				Value: fmt.Sprintf("%d MiB used of %d MiB allocated",
					node.MemoryUsed/mib, node.MemoryAllocated/mib),
			},
		},
	}
}

// Request parsing helpers.

type commandTarget struct {
	guildID   snowflake.ID
	userID    snowflake.ID
	channelID snowflake.ID
}

func (t commandTarget) control() usecases.ControlInput {
	return usecases.ControlInput{GuildID: t.guildID, UserID: t.userID}
}

// parseTarget extracts the guild, member and channel of a guild interaction.
func parseTarget(i *discordgo.InteractionCreate) (commandTarget, bool) {
	if i.Member == nil || i.Member.User == nil {
		return commandTarget{}, false
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return commandTarget{}, false
	}
	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return commandTarget{}, false
	}
	channelID, err := snowflake.Parse(i.ChannelID)
	if err != nil {
		return commandTarget{}, false
	}

	return commandTarget{guildID: guildID, userID: userID, channelID: channelID}, true
}

func optionMap(
	options []*discordgo.ApplicationCommandInteractionDataOption,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

// Response helpers.

// rejectionMessages holds the reply for each rejection, checked in order.
var rejectionMessages = []struct {
	err     error
	message string
}{
	{usecases.ErrInvalidQuery, "Please enter a search term or a link."},
	{usecases.ErrNoResults, "I couldn't find anything for that."},
	{usecases.ErrUserNotInVoice, "Where are you? Join a voice channel first."},
	{usecases.ErrWrongChannel, "I'm currently in another channel."},
	{usecases.ErrNotConnected, "I'm not in any channel."},
	{usecases.ErrNotPlaying, "I'm not playing anything."},
	{usecases.ErrAlreadyPaused, "I'm already pausing music."},
	{usecases.ErrNotPaused, "I'm already playing music."},
	{usecases.ErrInvalidPosition, "There is no track at this queue number."},
	{usecases.ErrNothingToShuffle, "I have nothing to shuffle."},
	{usecases.ErrNotSeekable, "I can't seek in this track."},
	{usecases.ErrSeekOutOfRange, "The timestamp is longer than the track itself."},
	{usecases.ErrInvalidVolume, "Please enter a volume between 0 and 200, or earrape."},
	{usecases.ErrUnknownFilter, "Unknown filter."},
	{usecases.ErrLiveStream, "I can't repeat a livestream."},
	{usecases.ErrNoLyrics, "No lyrics found!"},
}

// handleError replies to rejections and hands failures back to the bot.
func handleError(r bot.Responder, err error) error {
	if !usecases.IsRejection(err) {
		return err
	}
	for _, rejection := range rejectionMessages {
		if errors.Is(err, rejection.err) {
			return respondError(r, rejection.message)
		}
	}
	return respondError(r, err.Error())
}

func respondSuccess(r bot.Responder, description string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: description,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}

func trackLink(track *domain.Track) string {
	if track.URI != "" {
		return fmt.Sprintf("[%s](%s)", track.Title, track.URI)
	}
	return fmt.Sprintf("**%s**", track.Title)
}

// writeTrackLine writes a single track line to the string builder.
// Escapes period to prevent Discord markdown list formatting.
func writeTrackLine(sb *strings.Builder, position int, track *domain.Track) {
	fmt.Fprintf(sb, "%d\\. %s - %s `%s`\n", position, trackLink(track), orDash(track.Artist), track.FormattedDuration())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
