package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Radarr contains connection settings for the Radarr media server.
type Radarr struct {
	URL                  string  `toml:"url"`
	APIKey               string  `toml:"api_key"`
	RequestTimeout       int     `toml:"request_timeout"`
	AddDelayMillis       int     `toml:"add_delay_ms"`
	MaxRequestsPerSecond float64 `toml:"max_requests_per_second"`
	SearchOnAdd          bool    `toml:"search_on_add"`
}

// Telegram contains Telegram Bot API credentials.
type Telegram struct {
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
	APIURL   string `toml:"api_url"`
}

// Ntfy contains the ntfy topic URL used for push notifications.
type Ntfy struct {
	Topic string `toml:"topic"`
}

// Notifications contains configuration for the run report channels.
type Notifications struct {
	RequestTimeout int      `toml:"request_timeout"`
	Telegram       Telegram `toml:"telegram"`
	Ntfy           Ntfy     `toml:"ntfy"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Run contains settings for a single reconciliation pass.
type Run struct {
	// LockPath guards against overlapping invocations. Empty disables locking.
	LockPath string `toml:"lock_path"`
}

// Config encapsulates all configuration values for collectarr.
//
// Configuration sections by subsystem:
//   - Radarr: media server URL, API key, request pacing
//   - Notifications: Telegram and ntfy delivery targets
//   - Logging: log format, level, and optional file directory
//   - Run: overlapping-run lock
type Config struct {
	Radarr        Radarr        `toml:"radarr"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
	Run           Run           `toml:"run"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error: the
// defaults plus environment fallbacks are validated instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("collectarr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RadarrTimeout returns the per-request timeout for Radarr API calls.
func (c *Config) RadarrTimeout() time.Duration {
	return time.Duration(c.Radarr.RequestTimeout) * time.Second
}

// AddDelay returns the pause enforced after each successful movie addition.
func (c *Config) AddDelay() time.Duration {
	return time.Duration(c.Radarr.AddDelayMillis) * time.Millisecond
}

// NotificationTimeout returns the per-request timeout for notification delivery.
func (c *Config) NotificationTimeout() time.Duration {
	return time.Duration(c.Notifications.RequestTimeout) * time.Second
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Notifications.Telegram.BotToken != "" && c.Notifications.Telegram.ChatID != ""
}

// NtfyEnabled reports whether an ntfy topic is configured.
func (c *Config) NtfyEnabled() bool {
	return c.Notifications.Ntfy.Topic != ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Mask hides all but the last four characters of a secret for display.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
