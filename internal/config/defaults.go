package config

const (
	defaultConfigPath              = "~/.config/collectarr/config.toml"
	defaultRadarrRequestTimeout    = 30
	defaultRadarrAddDelayMillis    = 1000
	defaultRadarrRequestsPerSecond = 10
	defaultNotificationTimeout     = 10
	defaultTelegramAPIURL          = "https://api.telegram.org"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
)

// Default returns a Config populated with repository defaults. Credentials and
// the media server URL have no defaults.
func Default() Config {
	return Config{
		Radarr: Radarr{
			RequestTimeout:       defaultRadarrRequestTimeout,
			AddDelayMillis:       defaultRadarrAddDelayMillis,
			MaxRequestsPerSecond: defaultRadarrRequestsPerSecond,
			SearchOnAdd:          true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotificationTimeout,
			Telegram: Telegram{
				APIURL: defaultTelegramAPIURL,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
