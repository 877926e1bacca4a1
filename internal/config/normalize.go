package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeRadarr()
	c.normalizeNotifications()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	if err := c.normalizeRun(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeRadarr() {
	c.Radarr.URL = envFallback(c.Radarr.URL, "RADARR_URL")
	c.Radarr.URL = strings.TrimRight(c.Radarr.URL, "/")
	c.Radarr.APIKey = envFallback(c.Radarr.APIKey, "RADARR_API_KEY")
	if c.Radarr.RequestTimeout == 0 {
		c.Radarr.RequestTimeout = defaultRadarrRequestTimeout
	}
}

func (c *Config) normalizeNotifications() {
	tg := &c.Notifications.Telegram
	tg.BotToken = envFallback(tg.BotToken, "TELEGRAM_BOT_TOKEN")
	tg.ChatID = envFallback(tg.ChatID, "TELEGRAM_CHAT_ID")
	tg.APIURL = strings.TrimRight(strings.TrimSpace(tg.APIURL), "/")
	if tg.APIURL == "" {
		tg.APIURL = defaultTelegramAPIURL
	}
	c.Notifications.Ntfy.Topic = envFallback(c.Notifications.Ntfy.Topic, "NTFY_TOPIC")
	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaultNotificationTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRun() error {
	var err error
	if c.Run.LockPath, err = expandPath(strings.TrimSpace(c.Run.LockPath)); err != nil {
		return fmt.Errorf("run.lock_path: %w", err)
	}
	return nil
}

func envFallback(value, key string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(env)
	}
	return ""
}
