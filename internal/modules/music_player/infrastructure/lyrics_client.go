package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sglre6355/cherry/internal/modules/music_player/application/ports"
)

var _ ports.LyricsProvider = (*LyricsClient)(nil)

const (
	lyricsTimeout    = 10 * time.Second
	lyricsRateLimit  = 2 // requests per second
	lyricsRateBurst  = 5
	maxLyricsPayload = 1 << 20
)

// LyricsClient looks lyrics up on a lyrics.ovh compatible API.
type LyricsClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewLyricsClient creates a LyricsClient for the API at baseURL.
func NewLyricsClient(baseURL string) *LyricsClient {
	return &LyricsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: lyricsTimeout},
		limiter:    rate.NewLimiter(rate.Limit(lyricsRateLimit), lyricsRateBurst),
	}
}

type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
}

// Lyrics returns the song's lyrics, or "" when the API does not know it.
func (c *LyricsClient) Lyrics(ctx context.Context, artist, title string) (string, error) {
	if artist == "" || title == "" {
		return "", nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/" + url.PathEscape(artist) + "/" + url.PathEscape(title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("lyrics api returned status %d", resp.StatusCode)
	}

	var body lyricsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLyricsPayload)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode lyrics: %w", err)
	}
	// The API separates verses with CRLF pairs.
	return strings.ReplaceAll(body.Lyrics, "\r\n", "\n"), nil
}
