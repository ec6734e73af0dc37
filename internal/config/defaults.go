package config

const (
	defaultServerURL            = "http://localhost:4533"
	defaultClientName           = "navicull"
	defaultAPIVersion           = "1.16.1"
	defaultServerTimeoutSeconds = 30
	defaultMusicRoot            = "~/Music/Library"
	defaultSongSort             = "title"
	defaultMinRating            = 1
	defaultMaxRating            = 2
	defaultPageSize             = 500
	defaultStateDir             = "~/.local/share/navicull"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNotifyTimeout        = 10

	// MaxRating is the highest user rating the server assigns.
	MaxRating = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			URL:            defaultServerURL,
			ClientName:     defaultClientName,
			APIVersion:     defaultAPIVersion,
			TimeoutSeconds: defaultServerTimeoutSeconds,
		},
		Library: Library{
			MusicRoot: defaultMusicRoot,
			SongSort:  defaultSongSort,
		},
		Prune: Prune{
			MinRating: defaultMinRating,
			MaxRating: defaultMaxRating,
			PageSize:  defaultPageSize,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
