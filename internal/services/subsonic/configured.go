package subsonic

import (
	"errors"
	"net/http"

	"navicull/internal/config"
)

// NewFromConfig derives a credential bundle and builds a Client for the
// configured server.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("subsonic: config is required")
	}
	creds, err := NewCredentials(cfg.Server.Username, cfg.Server.Password)
	if err != nil {
		return nil, err
	}
	return New(Config{
		BaseURL:     cfg.Server.URL,
		Credentials: creds,
		APIVersion:  cfg.Server.APIVersion,
		ClientName:  cfg.Server.ClientName,
		HTTPClient:  &http.Client{Timeout: cfg.RequestTimeout()},
	})
}
