package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://music.youtube.com/youtubei/v1"
	defaultOrigin  = "https://music.youtube.com"

	// browsePrefix marks playlist ids in /browse targets. Bare ids get it
	// prepended on the way out; extracted browse ids get it stripped.
	browsePrefix = "VL"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	libraryPlaylistsBrowseID = "FEmusic_liked_playlists"
)

// requestClient is the fixed client-identity object sent under
// context.client with every call. Immutable and process-wide.
var requestClient = map[string]any{
	"clientName":    "WEB_REMIX",
	"clientVersion": "1.20250203.01.00",
	"hl":            "en",
	"gl":            "US",
	"platform":      "DESKTOP",
	"userAgent":     userAgent,
}

// Client dispatches signed requests against the private API. It is stateless
// between calls: every call derives a fresh auth token and returns fresh
// value records. Safe for concurrent use.
type Client struct {
	baseURL    string
	origin     string
	cookies    shared.Cookies
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
	now        func() time.Time
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL    string
	Origin     string
	Cookies    shared.Cookies
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewClient creates a Client for the given browser session.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Origin == "" {
		opts.Origin = defaultOrigin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		origin:     opts.Origin,
		cookies:    opts.Cookies,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(4), 2),
		logger:     shared.WithLogger(opts.Logger, "module", "innertube"),
		now:        time.Now,
	}
}

// BrowseID normalizes a playlist id into a /browse target: bare ids get the
// marker prefix, already-marked ids pass through unchanged.
func BrowseID(playlistID string) string {
	if strings.HasPrefix(playlistID, browsePrefix) {
		return playlistID
	}
	return browsePrefix + playlistID
}

// Search runs a catalog search and returns the parsed track results.
func (c *Client) Search(ctx context.Context, query string) ([]models.Track, error) {
	root, err := c.call(ctx, "search", map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	return ExtractSearchResults(root), nil
}

// LibraryPlaylists fetches the authenticated user's library playlists.
func (c *Client) LibraryPlaylists(ctx context.Context) ([]models.Playlist, error) {
	root, err := c.call(ctx, "browse", map[string]any{"browseId": libraryPlaylistsBrowseID})
	if err != nil {
		return nil, err
	}
	return ExtractLibraryPlaylists(root), nil
}

// Playlist fetches the track listing of a playlist by id.
func (c *Client) Playlist(ctx context.Context, playlistID string) ([]models.Track, error) {
	root, err := c.call(ctx, "browse", map[string]any{"browseId": BrowseID(playlistID)})
	if err != nil {
		return nil, err
	}
	return ExtractPlaylistTracks(root), nil
}

// Queue fetches the lookahead queue for a track, scoped to a playlist
// context when one is known. Either id may be empty, not both.
func (c *Client) Queue(ctx context.Context, videoID, playlistID string) ([]models.Track, error) {
	payload := map[string]any{}
	if videoID != "" {
		payload["videoId"] = videoID
	}
	if playlistID != "" {
		payload["playlistId"] = playlistID
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: videoId or playlistId", shared.ErrMissingArgument)
	}

	root, err := c.call(ctx, "next", payload)
	if err != nil {
		return nil, err
	}
	return ExtractQueue(root), nil
}

// call signs and dispatches one POST against the named endpoint and decodes
// the response body as a JSON object. No retries: a failed attempt surfaces
// to the caller, which decides whether to re-invoke.
func (c *Client) call(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}

	token, err := AuthToken(c.cookies, c.origin, c.now().Unix())
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"context": map[string]any{"client": requestClient},
	}
	for k, v := range payload {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "SAPISIDHASH "+token)
	req.Header.Set("Cookie", c.cookies.Header())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.origin)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("dispatching request", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d from /%s", shared.ErrProtocol, resp.StatusCode, endpoint)
	}

	var root map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProtocol, err)
	}

	return root, nil
}
