package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRadarr(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRadarr() error {
	if c.Radarr.URL == "" {
		return fmt.Errorf("radarr.url is required. Set RADARR_URL env var or edit %s (create with 'collectarr config init')", displayConfigPath())
	}
	parsed, err := url.Parse(c.Radarr.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("radarr.url %q must be an absolute http(s) URL", c.Radarr.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("radarr.url %q must use http or https", c.Radarr.URL)
	}
	if c.Radarr.APIKey == "" {
		return fmt.Errorf("radarr.api_key is required. Set RADARR_API_KEY env var or edit %s", displayConfigPath())
	}
	if c.Radarr.RequestTimeout < 0 {
		return errors.New("radarr.request_timeout must be positive (seconds)")
	}
	if c.Radarr.AddDelayMillis < 0 {
		return errors.New("radarr.add_delay_ms must not be negative")
	}
	if c.Radarr.MaxRequestsPerSecond < 0 {
		return errors.New("radarr.max_requests_per_second must not be negative")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	tg := c.Notifications.Telegram
	if (tg.BotToken == "") != (tg.ChatID == "") {
		return errors.New("notifications.telegram requires both bot_token and chat_id")
	}
	if !c.TelegramEnabled() && !c.NtfyEnabled() {
		return fmt.Errorf("a notification target is required: set notifications.telegram (TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID) or notifications.ntfy.topic (NTFY_TOPIC) in %s", displayConfigPath())
	}
	if c.NtfyEnabled() {
		parsed, err := url.Parse(c.Notifications.Ntfy.Topic)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("notifications.ntfy.topic %q must be a full topic URL", c.Notifications.Ntfy.Topic)
		}
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func displayConfigPath() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return defaultConfigPath
	}
	return path
}
