package preflight

import (
	"context"
	"path/filepath"

	"collectarr/internal/config"
	"collectarr/internal/services/radarr"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check that applies to the given config. Radarr is
// always checked; directories only when configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	client, err := radarr.New(radarr.Config{
		BaseURL: cfg.Radarr.URL,
		APIKey:  cfg.Radarr.APIKey,
		Timeout: cfg.RadarrTimeout(),
	})
	if err != nil {
		results = append(results, Result{Name: radarrCheckName, Detail: err.Error()})
	} else {
		results = append(results, CheckRadarr(ctx, client)...)
	}

	results = append(results, CheckNotifications(ctx, cfg)...)

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}
	if cfg.Run.LockPath != "" {
		results = append(results, CheckDirectoryAccess("Lock directory", filepath.Dir(cfg.Run.LockPath)))
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
