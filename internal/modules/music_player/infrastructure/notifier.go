package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
	"github.com/sglre6355/cherry/internal/modules/music_player/domain"
)

// Embed colors.
const (
	colorRed   = 0xE74C3C
	colorGreen = 0x2ECC71
)

// Notifier sends playback notifications to Discord channels.
type Notifier struct {
	session    *discordgo.Session
	users      ports.UserInfoProvider
	httpClient *http.Client
}

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session, users ports.UserInfoProvider) *Notifier {
	return &Notifier{
		session: session,
		users:   users,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// SendNowPlaying sends a "Now Playing" embed to the channel.
func (n *Notifier) SendNowPlaying(channelID snowflake.ID, track *domain.Track) error {
	embed := nowPlayingEmbed(track, n.requester(channelID, track))

	if thumbnailURL := n.getBestThumbnail(
		track.Source(),
		track.Identifier,
		track.ArtworkURL,
	); thumbnailURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: thumbnailURL,
		}
	}

	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

// SendRepeated announces a repeated track.
func (n *Notifier) SendRepeated(channelID snowflake.ID, track *domain.Track) error {
	return n.send(channelID, fmt.Sprintf("**Repeated** %s 🔂", track.Title))
}

// SendQueueCompleted announces that the queue ran out.
func (n *Notifier) SendQueueCompleted(channelID snowflake.ID) error {
	embed := &discordgo.MessageEmbed{
		Title: "**Queue completed** ✅",
		Color: colorGreen,
	}

	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

// SendStopped announces that playback was stopped.
func (n *Notifier) SendStopped(channelID snowflake.ID) error {
	embed := &discordgo.MessageEmbed{
		Title: "**Stopped** ❌",
		Color: colorRed,
	}

	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

// SendStuck announces a track skipped because it stalled.
func (n *Notifier) SendStuck(
	channelID snowflake.ID,
	track *domain.Track,
	threshold time.Duration,
) error {
	return n.send(channelID, fmt.Sprintf(
		"Skipped ⏭️: **%s** because it got stuck! (no audio for %s)",
		track.Title,
		threshold,
	))
}

// SendException announces a track skipped because of a node error.
func (n *Notifier) SendException(channelID snowflake.ID, track *domain.Track, message string) error {
	return n.send(channelID, fmt.Sprintf("**Skipped ⏭️:** %s\n**Reason ⛔:** %s", track.Title, message))
}

// SendInvalidTrack announces an unplayable queue slot.
func (n *Notifier) SendInvalidTrack(channelID snowflake.ID) error {
	return n.send(channelID, "Next item in queue is not a track. ❌")
}

// SendError sends an error message embed to the channel.
func (n *Notifier) SendError(channelID snowflake.ID, message string) error {
	embed := &discordgo.MessageEmbed{
		Description: message,
		Color:       colorRed,
	}

	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

func (n *Notifier) send(channelID snowflake.ID, content string) error {
	_, err := n.session.ChannelMessageSend(channelID.String(), content)
	return err
}

// requester resolves the display info of whoever queued the track.
// The guild is taken from the cached channel; nil when unknown.
func (n *Notifier) requester(channelID snowflake.ID, track *domain.Track) *ports.UserInfo {
	if n.users == nil || track.RequesterID == 0 {
		return nil
	}

	channel, err := n.session.State.Channel(channelID.String())
	if err != nil {
		return nil
	}
	guildID, err := snowflake.Parse(channel.GuildID)
	if err != nil {
		return nil
	}

	info, err := n.users.GetUserInfo(guildID, track.RequesterID)
	if err != nil {
		slog.Debug("failed to resolve requester", "guild", guildID, "error", err)
		return nil
	}
	return info
}

func nowPlayingEmbed(track *domain.Track, requester *ports.UserInfo) *discordgo.MessageEmbed {
	source := track.Source()

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Now Playing",
			IconURL: source.IconURL(),
		},
		Title: track.Title,
		URL:   track.URI,
		Color: source.Color(),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Artist",
				Value:  track.Artist,
				Inline: true,
			},
			{
				Name:   "Duration",
				Value:  track.FormattedDuration(),
				Inline: true,
			},
		},
	}

	if !track.EnqueuedAt.IsZero() {
		embed.Timestamp = track.EnqueuedAt.UTC().Format(time.RFC3339)
	}

	if requester != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    fmt.Sprintf("Requested by %s", requester.DisplayName),
			IconURL: requester.AvatarURL,
		}
	}

	return embed
}

// getBestThumbnail attempts to find the best quality thumbnail for the track.
// For YouTube, it tries different quality levels (maxresdefault, sddefault, etc.).
// For Twitch, it attempts to use a higher resolution version.
// For other sources, it returns the original artwork URL.
func (n *Notifier) getBestThumbnail(
	source domain.TrackSource,
	identifier string,
	fallbackURL string,
) string {
	switch source {
	case domain.TrackSourceYouTube:
		return n.getYouTubeThumbnail(identifier, fallbackURL)
	case domain.TrackSourceTwitch:
		return n.getTwitchThumbnail(fallbackURL)
	default:
		return fallbackURL
	}
}

// youTubeThumbnailBase is overridden in tests.
var youTubeThumbnailBase = "https://img.youtube.com/vi"

func (n *Notifier) getYouTubeThumbnail(videoID string, fallbackURL string) string {
	qualities := []string{"maxresdefault", "sddefault", "hqdefault", "mqdefault"}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, quality := range qualities {
		url := fmt.Sprintf("%s/%s/%s.jpg", youTubeThumbnailBase, videoID, quality)
		if n.urlExists(ctx, url) {
			return url
		}
	}

	return fallbackURL
}

func (n *Notifier) getTwitchThumbnail(artworkURL string) string {
	if artworkURL == "" {
		return ""
	}

	highResURL := strings.Replace(artworkURL, "440x248", "1280x720", 1)
	if highResURL == artworkURL {
		return artworkURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if n.urlExists(ctx, highResURL) {
		return highResURL
	}

	return artworkURL
}

// urlExists checks if a URL returns a successful response using a HEAD request.
func (n *Notifier) urlExists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}

// Ensure Notifier implements ports.NotificationSender.
var _ ports.NotificationSender = (*Notifier)(nil)
