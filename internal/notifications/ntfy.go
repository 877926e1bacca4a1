package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"collectarr/internal/services"
)

const ntfyComponent = "ntfy"

// Ntfy publishes messages to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	client   HTTPDoer
}

// NewNtfy constructs an ntfy notifier for the full topic URL.
func NewNtfy(topic string, client HTTPDoer) *Ntfy {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Ntfy{endpoint: strings.TrimSpace(topic), client: client}
}

func (n *Ntfy) Send(ctx context.Context, msg Message) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.Body))
	if err != nil {
		return services.Wrap(services.ErrDelivery, ntfyComponent, "send", "build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("Markdown", "yes")
	if msg.Title != "" {
		req.Header.Set("Title", msg.Title)
	}
	if len(msg.Tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.Tags, ","))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrDelivery, ntfyComponent, "send", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return services.Wrap(services.ErrDelivery, ntfyComponent, "send", fmt.Sprintf("status %d: %s", resp.StatusCode, trimBody(body)), nil)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (n *Ntfy) Test(ctx context.Context) error {
	return n.Send(ctx, testMessage())
}
