package radarr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"collectarr/internal/services"
)

const (
	component = "radarr"
	apiPrefix = "/api/v3"

	// DefaultTimeout bounds a single request when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4096
)

// HTTPDoer describes the HTTP client used by the Radarr client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config contains the options for creating a Client.
type Config struct {
	// BaseURL is the server root, e.g. http://radarr:7878.
	BaseURL string

	APIKey string

	// Timeout is the per-request timeout (DefaultTimeout when zero).
	Timeout time.Duration

	// AddDelay is the minimum spacing between successful additions.
	AddDelay time.Duration

	// RequestsPerSecond caps the overall request rate. Zero disables it.
	RequestsPerSecond float64

	// SearchOnAdd asks Radarr to search for a movie as soon as it is added.
	SearchOnAdd bool

	// HTTPClient overrides the default client built from Timeout.
	HTTPClient HTTPDoer
}

// Client talks to one Radarr server.
type Client struct {
	baseURL     string
	apiKey      string
	client      HTTPDoer
	limiter     *rate.Limiter
	gate        *gate
	searchOnAdd bool
}

// New constructs a Client. BaseURL and APIKey are required.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "base url is required", nil)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "invalid base url", err)
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "init", "api key is required", nil)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		client:      httpClient,
		limiter:     limiter,
		gate:        newGate(cfg.AddDelay),
		searchOnAdd: cfg.SearchOnAdd,
	}, nil
}

// BaseURL returns the normalized server root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// statusError carries a non-2xx answer. It wraps the sentinel chosen for the
// status so callers can classify it with errors.Is.
type statusError struct {
	marker error
	status int
	body   []byte
}

func (e *statusError) Error() string {
	body := strings.TrimSpace(string(e.body))
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.status)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.status, body)
}

func (e *statusError) Unwrap() error {
	return e.marker
}

func markerForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return services.ErrAuth
	case http.StatusNotFound:
		return services.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return services.ErrValidation
	default:
		return services.ErrTransport
	}
}

// do sends one request and returns the raw 2xx body. Non-2xx answers come back
// as *statusError; transport failures are tagged ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", services.ErrTransport, err)
		}
	}

	endpoint := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &statusError{marker: markerForStatus(resp.StatusCode), status: resp.StatusCode, body: snippet}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", services.ErrTransport, err)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return wrapRequestError(operation, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return services.Wrap(services.ErrTransport, component, operation, "decode response", err)
	}
	return nil
}

// wrapRequestError keeps the status-derived marker when there is one.
func wrapRequestError(operation string, err error) error {
	marker := services.ErrTransport
	switch {
	case errors.Is(err, services.ErrAuth):
		marker = services.ErrAuth
	case errors.Is(err, services.ErrNotFound):
		marker = services.ErrNotFound
	case errors.Is(err, services.ErrValidation):
		marker = services.ErrValidation
	}
	return services.Wrap(marker, component, operation, "", err)
}
