package reconcile

import (
	"context"
	"log/slog"

	"collectarr/internal/logging"
	"collectarr/internal/services"
)

// MediaServer is the subset of the media server API the engine needs.
type MediaServer interface {
	GetMovie(ctx context.Context, id int) (Movie, error)
	UpdateMovie(ctx context.Context, movie Movie) (Movie, error)
	AddMovie(ctx context.Context, ref CatalogRef, defaults Defaults) (AddResult, error)
}

// Engine diffs collection snapshots against library state and applies the
// resulting actions one movie at a time.
type Engine struct {
	media  MediaServer
	logger *slog.Logger
}

// NewEngine constructs an engine backed by the given media server.
func NewEngine(media MediaServer, logger *slog.Logger) *Engine {
	return &Engine{
		media:  media,
		logger: logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Reconcile processes collections in order and returns the run summary. A
// failure on one movie is logged and skipped; it never stops the remaining
// movies or collections. Cancelling ctx stops before the next movie and
// returns what was accomplished so far.
func (e *Engine) Reconcile(ctx context.Context, collections []Collection, defaults Defaults) Summary {
	var summary Summary
	for _, collection := range collections {
		if ctx.Err() != nil {
			e.logger.Warn("reconciliation interrupted", logging.Error(ctx.Err()))
			break
		}
		if report, ok := e.reconcileCollection(ctx, collection, defaults, &summary); ok {
			summary.Collections = append(summary.Collections, report)
		}
	}
	return summary
}

func (e *Engine) reconcileCollection(ctx context.Context, collection Collection, defaults Defaults, summary *Summary) (CollectionReport, bool) {
	ctx = services.WithCollection(ctx, collection.Name)
	logger := logging.WithContext(ctx, e.logger)
	logger.Debug("reconciling collection", logging.Int("movies", len(collection.Movies)))

	report := CollectionReport{Name: collection.Name}
	for _, ref := range collection.Movies {
		if ctx.Err() != nil {
			break
		}
		var line string
		switch ref := ref.(type) {
		case LibraryRef:
			line = e.ensureMonitored(ctx, logger, ref, summary)
		case CatalogRef:
			line = e.addMissing(ctx, logger, ref, defaults, summary)
		case IncompleteRef:
			logger.Warn("cannot process collection movie, missing data",
				logging.String("title", ref.Title),
				logging.Int("year", ref.Year),
			)
			summary.Skipped++
		default:
			logger.Warn("unknown collection movie reference", logging.Any("ref", ref))
			summary.Skipped++
		}
		if line != "" {
			report.Lines = append(report.Lines, line)
		}
	}
	return report, len(report.Lines) > 0
}

func (e *Engine) ensureMonitored(ctx context.Context, logger *slog.Logger, ref LibraryRef, summary *Summary) string {
	movie, err := e.media.GetMovie(ctx, ref.MovieID)
	if err != nil {
		logger.Error("error retrieving movie",
			logging.Int(logging.FieldMovieID, ref.MovieID),
			logging.Error(err),
		)
		summary.Failed++
		return ""
	}
	if movie.Monitored {
		return ""
	}

	movie.Monitored = true
	if _, err := e.media.UpdateMovie(ctx, movie); err != nil {
		logger.Error("error updating movie",
			logging.Int(logging.FieldMovieID, movie.ID),
			logging.String("movie", movie.Label()),
			logging.Error(err),
		)
		summary.Failed++
		return ""
	}

	logger.Info("movie set as monitored",
		logging.Int(logging.FieldMovieID, movie.ID),
		logging.String("movie", movie.Label()),
	)
	summary.Monitored++
	return MonitoredLine(movie.Title, movie.Year)
}

func (e *Engine) addMissing(ctx context.Context, logger *slog.Logger, ref CatalogRef, defaults Defaults, summary *Summary) string {
	result, err := e.media.AddMovie(ctx, ref, defaults)
	if err != nil {
		logger.Error("error adding movie",
			logging.Int(logging.FieldTMDBID, ref.TMDBID),
			logging.String("movie", label(ref.Title, ref.Year)),
			logging.Error(err),
		)
		summary.Failed++
		return ""
	}

	switch result.Status {
	case AddAlreadyExists:
		logger.Info("movie already exists",
			logging.Int(logging.FieldTMDBID, ref.TMDBID),
			logging.String("movie", label(ref.Title, ref.Year)),
		)
		summary.AlreadyPresent++
		return ""
	case AddCreated:
		logger.Info("movie added and monitored",
			logging.Int(logging.FieldTMDBID, ref.TMDBID),
			logging.Int(logging.FieldMovieID, result.Movie.ID),
			logging.String("movie", label(ref.Title, ref.Year)),
		)
		summary.Added++
		return AddedLine(ref.Title, ref.Year)
	default:
		logger.Warn("unexpected add outcome",
			logging.Int(logging.FieldTMDBID, ref.TMDBID),
			logging.String("status", result.Status.String()),
		)
		summary.Failed++
		return ""
	}
}
