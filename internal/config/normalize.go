package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeServer()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	return nil
}

func (c *Config) normalizeServer() {
	if value, ok := os.LookupEnv("NAVIDROME_URL"); ok && strings.TrimSpace(c.Server.URL) == defaultServerURL {
		c.Server.URL = value
	}
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	if c.Server.URL == "" {
		c.Server.URL = defaultServerURL
	}
	if strings.TrimSpace(c.Server.Username) == "" {
		if value, ok := os.LookupEnv("NAVIDROME_USER"); ok {
			c.Server.Username = value
		}
	}
	if c.Server.Password == "" {
		if value, ok := os.LookupEnv("NAVIDROME_PASSWORD"); ok {
			c.Server.Password = value
		}
	}
	c.Server.Username = strings.TrimSpace(c.Server.Username)
	c.Server.ClientName = strings.TrimSpace(c.Server.ClientName)
	if c.Server.ClientName == "" {
		c.Server.ClientName = defaultClientName
	}
	c.Server.APIVersion = strings.TrimSpace(c.Server.APIVersion)
	if c.Server.APIVersion == "" {
		c.Server.APIVersion = defaultAPIVersion
	}
	c.Library.SongSort = strings.TrimSpace(c.Library.SongSort)
	if c.Library.SongSort == "" {
		c.Library.SongSort = defaultSongSort
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Library.MusicRoot) == "" {
		c.Library.MusicRoot = defaultMusicRoot
	}
	if c.Library.MusicRoot, err = expandPath(c.Library.MusicRoot); err != nil {
		return fmt.Errorf("library.music_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
