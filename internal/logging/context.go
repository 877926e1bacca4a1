package logging

import (
	"context"
	"log/slog"

	"collectarr/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the reconciliation run identifier.
	FieldRunID = "run_id"
	// FieldCollection is the standardized structured logging key for collection names.
	FieldCollection = "collection"
	// FieldMovieID is the standardized structured logging key for Radarr internal movie ids.
	FieldMovieID = "movie_id"
	// FieldTMDBID is the standardized structured logging key for TMDB catalog ids.
	FieldTMDBID = "tmdb_id"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if name, ok := services.CollectionFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCollection, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
