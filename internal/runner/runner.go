package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"collectarr/internal/logging"
	"collectarr/internal/notifications"
	"collectarr/internal/reconcile"
	"collectarr/internal/services"
)

// ErrRunInProgress reports that another invocation holds the run lock.
var ErrRunInProgress = errors.New("another collectarr run is in progress")

// Media is the media server surface a run needs.
type Media interface {
	reconcile.MediaServer
	DefaultQualityProfileID(ctx context.Context) (int, error)
	DefaultRootFolderPath(ctx context.Context) (string, error)
	ListCollections(ctx context.Context) ([]reconcile.Collection, error)
}

// Options tune a Runner.
type Options struct {
	// LockPath, when set, is held for the duration of Run.
	LockPath string
	// Now overrides the clock; tests use it to get stable durations.
	Now      func() time.Time
}

// Result describes a completed run.
type Result struct {
	RunID    string
	Defaults reconcile.Defaults
	Summary  reconcile.Summary

	// Collections is the number of collections the server returned.
	Collections int

	// Notified is true when a report was handed to every channel without error.
	Notified bool

	// NotifyErr records a delivery failure. It never fails the run.
	NotifyErr error

	Duration time.Duration
}

// Runner performs one reconciliation pass from defaults lookup to report.
type Runner struct {
	media    Media
	notifier notifications.Service
	base     *slog.Logger
	logger   *slog.Logger
	lockPath string
	now      func() time.Time
}

// New constructs a Runner.
func New(media Media, notifier notifications.Service, logger *slog.Logger, opts Options) *Runner {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Runner{
		media:    media,
		notifier: notifier,
		base:     logger,
		logger:   logging.NewComponentLogger(logger, "runner"),
		lockPath: opts.LockPath,
		now:      now,
	}
}

// Run executes the pass. Errors returned here are fatal preconditions: the
// run lock is held elsewhere, defaults are missing, or collections could not be
// listed. In those cases nothing was changed and nothing was sent.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	started := r.now()
	ctx = services.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, r.logger)

	unlock, err := r.acquireLock()
	if err != nil {
		return result, err
	}
	defer unlock()

	logger.Info("fetching default settings from radarr")
	profileID, err := r.media.DefaultQualityProfileID(ctx)
	if err != nil {
		return result, fmt.Errorf("default quality profile: %w", err)
	}
	rootFolder, err := r.media.DefaultRootFolderPath(ctx)
	if err != nil {
		return result, fmt.Errorf("default root folder: %w", err)
	}
	result.Defaults = reconcile.Defaults{QualityProfileID: profileID, RootFolderPath: rootFolder}
	logger.Info("default settings resolved",
		logging.Int("quality_profile_id", profileID),
		logging.String("root_folder", rootFolder),
	)

	collections, err := r.media.ListCollections(ctx)
	if err != nil {
		return result, fmt.Errorf("list collections: %w", err)
	}
	result.Collections = len(collections)
	logger.Info("collections fetched", logging.Int("count", len(collections)))

	engine := reconcile.NewEngine(r.media, r.base)
	result.Summary = engine.Reconcile(ctx, collections, result.Defaults)
	summary := result.Summary

	logger.Info("reconciliation finished",
		logging.Int("monitored", summary.Monitored),
		logging.Int("added", summary.Added),
		logging.Int("already_present", summary.AlreadyPresent),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)

	if summary.Changes() == 0 {
		logger.Info("no changes needed; all movies were already monitored or previously added")
		result.Duration = r.now().Sub(started)
		return result, nil
	}

	if err := r.notifier.Send(ctx, FormatMessage(summary)); err != nil {
		logger.Error("notification delivery failed", logging.Error(err))
		result.NotifyErr = err
	} else {
		logger.Info("notification sent")
		result.Notified = true
	}
	result.Duration = r.now().Sub(started)
	return result, nil
}

func (r *Runner) acquireLock() (func(), error) {
	if r.lockPath == "" {
		return func() {}, nil
	}
	lock := flock.New(r.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRunInProgress, r.lockPath)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.String("lock", r.lockPath), logging.Error(err))
		}
	}, nil
}
