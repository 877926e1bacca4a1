package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"collectarr/internal/services"
)

const telegramComponent = "telegram"

// Telegram posts messages through the Bot API sendMessage method.
type Telegram struct {
	endpoint string
	chatID   string
	client   HTTPDoer
}

// NewTelegram constructs a Telegram notifier. apiURL is the Bot API root,
// normally https://api.telegram.org.
func NewTelegram(apiURL, botToken, chatID string, client HTTPDoer) *Telegram {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	base := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return &Telegram{
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", base, strings.TrimSpace(botToken)),
		chatID:   strings.TrimSpace(chatID),
		client:   client,
	}
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers msg.Body with Markdown parsing. The title is not sent; the
// body carries its own header.
func (t *Telegram) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", msg.Body)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return services.Wrap(services.ErrDelivery, telegramComponent, "send", "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		// The endpoint embeds the bot token; keep it out of the error text.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return services.Wrap(services.ErrDelivery, telegramComponent, "send", "request failed", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return services.Wrap(services.ErrDelivery, telegramComponent, "send", fmt.Sprintf("status %d: %s", resp.StatusCode, trimBody(body)), nil)
	}
	var result telegramResponse
	if err := json.Unmarshal(body, &result); err == nil && !result.OK {
		return services.Wrap(services.ErrDelivery, telegramComponent, "send", "rejected: "+result.Description, nil)
	}
	return nil
}

// Test sends a short test message.
func (t *Telegram) Test(ctx context.Context) error {
	return t.Send(ctx, testMessage())
}
