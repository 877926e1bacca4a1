package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"collectarr/internal/config"
	"collectarr/internal/logging"
	"collectarr/internal/services/radarr"
)

// configError marks failures to load or validate configuration.
type configError struct {
	err error
}

func (e *configError) Error() string {
	return fmt.Sprintf("configuration: %v", e.err)
}

func (e *configError) Unwrap() error {
	return e.err
}

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = &configError{err: err}
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			cfg.Logging.Format = strings.ToLower(strings.TrimSpace(*c.logFormatFlag))
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = &configError{err: err}
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// logger builds the run logger, writing console output to the command's
// stderr stream.
func (c *commandContext) logger(stderr io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := logging.ConfigOptions(cfg)
	opts.Stderr = stderr
	logger, err := logging.New(opts)
	if err != nil {
		return nil, &configError{err: err}
	}
	return logger, nil
}

func (c *commandContext) radarrClient() (*radarr.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := radarr.New(radarr.Config{
		BaseURL:           cfg.Radarr.URL,
		APIKey:            cfg.Radarr.APIKey,
		Timeout:           cfg.RadarrTimeout(),
		AddDelay:          cfg.AddDelay(),
		RequestsPerSecond: cfg.Radarr.MaxRequestsPerSecond,
		SearchOnAdd:       cfg.Radarr.SearchOnAdd,
	})
	if err != nil {
		return nil, &configError{err: err}
	}
	return client, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
