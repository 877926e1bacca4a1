package preflight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"collectarr/internal/config"
	"collectarr/internal/services"
	"collectarr/internal/services/radarr"
)

const (
	radarrCheckName = "Radarr"
	checkTimeout    = 10 * time.Second
)

// RadarrProbe is the subset of the Radarr client used by the readiness checks.
type RadarrProbe interface {
	SystemStatus(ctx context.Context) (radarr.SystemStatus, error)
	DefaultQualityProfileID(ctx context.Context) (int, error)
	DefaultRootFolderPath(ctx context.Context) (string, error)
}

// CheckRadarr verifies connectivity and authentication, then that the server
// has the quality profile and root folder used for additions. The default
// checks are skipped when the server is unreachable.
func CheckRadarr(ctx context.Context, probe RadarrProbe) []Result {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	status, err := probe.SystemStatus(checkCtx)
	if err != nil {
		return []Result{{Name: radarrCheckName, Detail: summarizeError(err)}}
	}
	detail := "Reachable"
	if status.Version != "" {
		detail = fmt.Sprintf("Reachable (v%s)", status.Version)
	}
	results := []Result{{Name: radarrCheckName, Passed: true, Detail: detail}}

	if id, err := probe.DefaultQualityProfileID(checkCtx); err != nil {
		results = append(results, Result{Name: "Quality profile", Detail: summarizeError(err)})
	} else {
		results = append(results, Result{Name: "Quality profile", Passed: true, Detail: fmt.Sprintf("id %d", id)})
	}

	if path, err := probe.DefaultRootFolderPath(checkCtx); err != nil {
		results = append(results, Result{Name: "Root folder", Detail: summarizeError(err)})
	} else {
		results = append(results, Result{Name: "Root folder", Passed: true, Detail: path})
	}
	return results
}

// CheckNotifications validates every configured notification channel.
func CheckNotifications(ctx context.Context, cfg *config.Config) []Result {
	if !cfg.TelegramEnabled() && !cfg.NtfyEnabled() {
		return []Result{{Name: "Notifications", Detail: "no notification target configured"}}
	}
	var results []Result
	if cfg.TelegramEnabled() {
		tg := cfg.Notifications.Telegram
		results = append(results, CheckTelegram(ctx, tg.APIURL, tg.BotToken))
	}
	if cfg.NtfyEnabled() {
		results = append(results, CheckNtfy(cfg.Notifications.Ntfy.Topic))
	}
	return results
}

type telegramGetMe struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		Username string `json:"username"`
	} `json:"result"`
}

// CheckTelegram verifies the bot token with the getMe method. It does not
// send anything to the chat.
func CheckTelegram(ctx context.Context, apiURL, botToken string) Result {
	const name = "Telegram"

	base := strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing api url"}
	}
	if strings.TrimSpace(botToken) == "" {
		return Result{Name: name, Detail: "missing bot token"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/bot%s/getMe", base, strings.TrimSpace(botToken))
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Name: name, Detail: "invalid api url"}
	}

	client := &http.Client{Timeout: checkTimeout}
	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%s)", summarizeError(err))}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusNotFound:
		return Result{Name: name, Detail: "auth failed (invalid bot token)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", resp.StatusCode)}
	}

	var payload telegramGetMe
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err != nil || !payload.OK {
		return Result{Name: name, Detail: "unexpected getMe response"}
	}
	if payload.Result.Username != "" {
		return Result{Name: name, Passed: true, Detail: "bot @" + payload.Result.Username}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckNtfy validates the topic URL without publishing to it.
func CheckNtfy(topic string) Result {
	const name = "ntfy"

	parsed, err := url.Parse(strings.TrimSpace(topic))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not an http(s) topic url)", topic)}
	}
	if strings.Trim(parsed.Path, "/") == "" {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: missing topic name)", topic)}
	}
	return Result{Name: name, Passed: true, Detail: topic}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeError produces a short, human-readable failure description.
func summarizeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, services.ErrAuth):
		return "auth failed (invalid api key)"
	case errors.Is(err, services.ErrConfiguration):
		return strings.TrimPrefix(err.Error(), services.ErrConfiguration.Error()+": ")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return err.Error()
}
