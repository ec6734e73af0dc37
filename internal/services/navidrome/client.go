package navidrome

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"navicull/internal/services"
)

const (
	authHeader         = "x-nd-authorization"
	defaultSongSort    = "title"
	defaultHTTPTimeout = 30 * time.Second
)

// ErrNotAuthenticated is returned when a lookup runs before Login.
var ErrNotAuthenticated = errors.New("navidrome: not authenticated")

// HTTPDoer describes the HTTP client used by the Navidrome client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config describes the Navidrome client configuration.
type Config struct {
	BaseURL  string
	Username string
	Password string
	// SongSort is the _sort key used when picking the first song of an album.
	SongSort string
	// LookupRPS paces song lookups; zero disables pacing.
	LookupRPS  float64
	HTTPClient HTTPDoer
}

// Client wraps the native API. Login must succeed before ResolveAlbumDir.
type Client struct {
	baseURL  *url.URL
	username string
	password string
	sort     string
	limiter  *rate.Limiter
	http     HTTPDoer

	mu    sync.RWMutex
	token string
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, services.Wrap(services.ErrConfiguration, "navidrome", "init", "base url is required", nil)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "navidrome", "init", "parse base url", err)
	}
	sortKey := strings.TrimSpace(cfg.SongSort)
	if sortKey == "" {
		sortKey = defaultSongSort
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	client := &Client{
		baseURL:  baseURL,
		username: cfg.Username,
		password: cfg.Password,
		sort:     sortKey,
		http:     httpClient,
	}
	if cfg.LookupRPS > 0 {
		client.limiter = rate.NewLimiter(rate.Limit(cfg.LookupRPS), 1)
	}
	return client, nil
}

// Login exchanges the username and password for a bearer token.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "navidrome", "login", "encode credentials", err)
	}
	endpoint := c.baseURL.JoinPath("auth", "login")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrTransport, "navidrome", "login", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransport, "navidrome", "login", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return services.Wrap(services.ErrAuthentication, "navidrome", "login", fmt.Sprintf("rejected (%s)", resp.Status), nil)
	}
	if resp.StatusCode >= 400 {
		return statusError("login", resp)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return services.Wrap(services.ErrDecode, "navidrome", "login", "decode response", err)
	}
	if strings.TrimSpace(payload.Token) == "" {
		return services.Wrap(services.ErrAuthentication, "navidrome", "login", "response carried no token", nil)
	}

	c.mu.Lock()
	c.token = payload.Token
	c.mu.Unlock()
	return nil
}

// ResolveAlbumDir returns the library-relative directory holding the album,
// taken from the path of its first song. ok is false when the server has no
// usable song for the album. Every song of an album is assumed to share one
// directory.
func (c *Client) ResolveAlbumDir(ctx context.Context, albumID string) (string, bool, error) {
	token := c.currentToken()
	if token == "" {
		return "", false, ErrNotAuthenticated
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", false, services.Wrap(services.ErrTransport, "navidrome", "songs", "wait for rate limiter", err)
		}
	}

	endpoint := c.baseURL.JoinPath("api", "song")
	query := url.Values{}
	query.Set("album_id", albumID)
	query.Set("_start", "0")
	query.Set("_end", "1")
	query.Set("_sort", c.sort)
	query.Set("_order", "ASC")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", false, services.Wrap(services.ErrTransport, "navidrome", "songs", "build request", err)
	}
	req.Header.Set(authHeader, "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, services.Wrap(services.ErrTransport, "navidrome", "songs", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", false, services.Wrap(services.ErrAuthentication, "navidrome", "songs", "token rejected", nil)
	}
	if resp.StatusCode >= 400 {
		return "", false, statusError("songs", resp)
	}

	var songs []struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&songs); err != nil {
		return "", false, services.Wrap(services.ErrDecode, "navidrome", "songs", "decode response", err)
	}
	if len(songs) == 0 {
		return "", false, nil
	}
	return albumDir(songs[0].Path)
}

// albumDir maps a song path to its parent directory. Songs sitting directly
// in the library root yield no directory.
func albumDir(songPath string) (string, bool, error) {
	songPath = strings.TrimSpace(songPath)
	if songPath == "" {
		return "", false, nil
	}
	dir := path.Dir(songPath)
	if dir == "." || dir == "/" || dir == "" {
		return "", false, nil
	}
	return dir, true, nil
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func statusError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := fmt.Sprintf("unexpected status %s", resp.Status)
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		msg += ": " + trimmed
	}
	return services.Wrap(services.ErrTransport, "navidrome", operation, msg, nil)
}
