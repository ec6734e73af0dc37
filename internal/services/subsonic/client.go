package subsonic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"navicull/internal/catalog"
	"navicull/internal/services"
)

const (
	defaultAPIVersion  = "1.16.1"
	defaultClientName  = "navicull"
	defaultHTTPTimeout = 30 * time.Second

	// ListTypeAlphabetical orders getAlbumList2 by album name.
	ListTypeAlphabetical = "alphabeticalByName"
)

// Config describes the Subsonic client configuration.
type Config struct {
	BaseURL     string
	Credentials Credentials
	APIVersion  string
	ClientName  string
	HTTPClient  *http.Client
}

// Client wraps the Subsonic REST endpoints served under /rest.
type Client struct {
	baseURL *url.URL
	creds   Credentials
	version string
	client  string
	http    *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, services.Wrap(services.ErrConfiguration, "subsonic", "new client", "base url is required", nil)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "subsonic", "new client", "parse base url", err)
	}
	if cfg.Credentials.Token == "" || cfg.Credentials.Salt == "" {
		return nil, services.Wrap(services.ErrConfiguration, "subsonic", "new client", "credentials are required", nil)
	}
	version := strings.TrimSpace(cfg.APIVersion)
	if version == "" {
		version = defaultAPIVersion
	}
	clientName := strings.TrimSpace(cfg.ClientName)
	if clientName == "" {
		clientName = defaultClientName
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL: baseURL,
		creds:   cfg.Credentials,
		version: version,
		client:  clientName,
		http:    httpClient,
	}, nil
}

// ListAlbums returns one window of getAlbumList2 in alphabetical order.
func (c *Client) ListAlbums(ctx context.Context, offset, size int) ([]catalog.Record, error) {
	params := url.Values{}
	params.Set("type", ListTypeAlphabetical)
	params.Set("size", strconv.Itoa(size))
	params.Set("offset", strconv.Itoa(offset))

	var payload struct {
		AlbumList2 struct {
			Album []album `json:"album"`
		} `json:"albumList2"`
	}
	if err := c.call(ctx, "getAlbumList2", params, &payload); err != nil {
		return nil, err
	}

	records := make([]catalog.Record, 0, len(payload.AlbumList2.Album))
	for _, a := range payload.AlbumList2.Album {
		records = append(records, catalog.Record{
			ID:     a.ID,
			Name:   a.Name,
			Artist: a.Artist,
			Rating: a.UserRating,
		})
	}
	return records, nil
}

// StartScan asks the server to rescan its music folders.
func (c *Client) StartScan(ctx context.Context) error {
	return c.call(ctx, "startScan", nil, nil)
}

// Ping checks connectivity and credentials.
func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "ping", nil, nil)
}

func (c *Client) call(ctx context.Context, endpoint string, extra url.Values, out any) error {
	params := url.Values{}
	for key, values := range extra {
		params[key] = values
	}
	c.creds.apply(params, c.version, c.client)

	target := c.baseURL.JoinPath("rest", endpoint+".view")
	target.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "subsonic", endpoint, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransport, "subsonic", endpoint, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return services.Wrap(services.ErrTransport, "subsonic", endpoint,
			fmt.Sprintf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body))), nil)
	}

	var wrapper struct {
		Response json.RawMessage `json:"subsonic-response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return services.Wrap(services.ErrDecode, "subsonic", endpoint, "decode response", err)
	}
	if len(wrapper.Response) == 0 {
		return services.Wrap(services.ErrDecode, "subsonic", endpoint, "response missing envelope", nil)
	}

	var status envelope
	if err := json.Unmarshal(wrapper.Response, &status); err != nil {
		return services.Wrap(services.ErrDecode, "subsonic", endpoint, "decode envelope", err)
	}
	if status.Status != "ok" {
		apiErr := &APIError{}
		if status.Error != nil {
			apiErr.Code = status.Error.Code
			apiErr.Message = status.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(wrapper.Response, out); err != nil {
		return services.Wrap(services.ErrDecode, "subsonic", endpoint, "decode payload", err)
	}
	return nil
}

type envelope struct {
	Status string `json:"status"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type album struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	UserRating int    `json:"userRating"`
}
