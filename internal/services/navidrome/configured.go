package navidrome

import (
	"net/http"

	"navicull/internal/config"
	"navicull/internal/services"
)

// NewFromConfig builds a native API client for the configured server.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "navidrome", "init", "config is required", nil)
	}
	return New(Config{
		BaseURL:    cfg.Server.URL,
		Username:   cfg.Server.Username,
		Password:   cfg.Server.Password,
		SongSort:   cfg.Library.SongSort,
		LookupRPS:  cfg.Prune.LookupRPS,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout()},
	})
}
