package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"collectarr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a valid config rooted in a per-test temp directory. It
// points at an unroutable Radarr and an ntfy topic until options say
// otherwise, and clears the environment fallbacks so the host cannot leak in.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	for _, key := range []string{"RADARR_URL", "RADARR_API_KEY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "NTFY_TOPIC"} {
		t.Setenv(key, "")
	}

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Radarr.URL = "http://127.0.0.1:7878"
	cfgVal.Radarr.APIKey = "test"
	cfgVal.Radarr.AddDelayMillis = 0
	cfgVal.Radarr.MaxRequestsPerSecond = 0
	cfgVal.Notifications.Ntfy.Topic = "http://127.0.0.1:2586/collectarr"
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	if err := os.MkdirAll(cfgVal.Logging.Dir, 0o755); err != nil {
		t.Fatalf("mkdir log dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRadarr points the config at a Radarr server.
func WithRadarr(url, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Radarr.URL = url
		b.cfg.Radarr.APIKey = apiKey
	}
}

// WithNtfy sets the ntfy topic URL. An empty topic disables ntfy.
func WithNtfy(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.Ntfy.Topic = topic
	}
}

// WithTelegram configures Telegram against the given Bot API root.
func WithTelegram(apiURL, botToken, chatID string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.Telegram.APIURL = apiURL
		b.cfg.Notifications.Telegram.BotToken = botToken
		b.cfg.Notifications.Telegram.ChatID = chatID
	}
}

// WithLockFile enables the run lock inside the test directory.
func WithLockFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Run.LockPath = filepath.Join(b.baseDir, "collectarr.lock")
	}
}

// WriteConfigFile encodes cfg as TOML at path and returns path.
func WriteConfigFile(t testing.TB, path string, cfg *config.Config) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
	return path
}
