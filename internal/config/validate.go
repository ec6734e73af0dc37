package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePrune(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	parsed, err := url.Parse(c.Server.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("server.url %q is not an absolute URL", c.Server.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("server.url scheme must be http or https, got %q", parsed.Scheme)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return errors.New("server.timeout_seconds must be positive")
	}
	return nil
}

// ValidateCredentials reports missing server credentials. It is separate from
// Validate so commands that never reach the server (config init, history)
// work without them.
func (c *Config) ValidateCredentials() error {
	if c.Server.Username == "" || c.Server.Password == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/navicull/config.toml"
		}
		return fmt.Errorf("server.username and server.password are required. Set NAVIDROME_USER and NAVIDROME_PASSWORD env vars or edit %s", defaultPath)
	}
	return nil
}

func (c *Config) validatePrune() error {
	return ValidateRatingRange(c.Prune.MinRating, c.Prune.MaxRating, c.Prune.PageSize, c.Prune.LookupRPS)
}

// ValidateRatingRange checks prune settings after CLI overrides are applied.
func ValidateRatingRange(minRating, maxRating, pageSize int, lookupRPS float64) error {
	if minRating < 0 || maxRating < 0 {
		return errors.New("prune.min_rating and prune.max_rating must be >= 0")
	}
	if maxRating > MaxRating {
		return fmt.Errorf("prune.max_rating must be <= %d", MaxRating)
	}
	if minRating > maxRating {
		return fmt.Errorf("prune.min_rating (%d) must not exceed prune.max_rating (%d)", minRating, maxRating)
	}
	if pageSize <= 0 {
		return errors.New("prune.page_size must be positive")
	}
	if lookupRPS < 0 {
		return errors.New("prune.lookup_rps must be >= 0")
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if strings.TrimSpace(c.Library.MusicRoot) == "" {
		return errors.New("library.music_root must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
