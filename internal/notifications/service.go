package notifications

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"collectarr/internal/config"
)

const (
	userAgent      = "collectarr/0.1.0"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 2048
)

// Message is one notification. Body is written in Telegram's legacy Markdown
// dialect; ntfy renders the same text as Markdown.
type Message struct {
	Title string
	Body  string
	Tags  []string
}

// Service delivers run reports to the configured channels.
type Service interface {
	Send(ctx context.Context, msg Message) error
	Test(ctx context.Context) error
}

// HTTPDoer describes the HTTP client used by the notifiers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewService builds a service for every configured channel. With more than
// one channel the message is fanned out; with none a no-op is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	timeout := cfg.NotificationTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	var channels []Service
	if cfg.TelegramEnabled() {
		tg := cfg.Notifications.Telegram
		channels = append(channels, NewTelegram(tg.APIURL, tg.BotToken, tg.ChatID, client))
	}
	if cfg.NtfyEnabled() {
		channels = append(channels, NewNtfy(cfg.Notifications.Ntfy.Topic, client))
	}

	switch len(channels) {
	case 0:
		return noopService{}
	case 1:
		return channels[0]
	default:
		return fanout(channels)
	}
}

// fanout attempts every channel and joins the failures.
type fanout []Service

func (f fanout) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, channel := range f {
		if err := channel.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) Test(ctx context.Context) error {
	var errs []error
	for _, channel := range f {
		if err := channel.Test(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func testMessage() Message {
	return Message{
		Title: "Collectarr - Test",
		Body:  "🧪 Notification system test",
		Tags:  []string{"collectarr", "test"},
	}
}

type noopService struct{}

func (noopService) Send(context.Context, Message) error { return nil }
func (noopService) Test(context.Context) error          { return nil }

func trimBody(body []byte) string {
	return strings.TrimSpace(string(body))
}
