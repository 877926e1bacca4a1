// Package reconcile holds the collection reconciliation engine.
//
// Given collection snapshots and the run defaults, the Engine makes sure every
// library movie referenced by a collection is monitored and adds catalog
// movies that are missing from the library. Each movie is handled
// independently: a failed fetch, update or addition is logged and skipped so
// the rest of the run continues. Rerunning against an unchanged library is a
// no-op, because monitored movies are left alone and the media server reports
// already-added movies as AddAlreadyExists instead of creating duplicates.
//
// The engine has no timing concerns; pacing of additions belongs to the
// MediaServer implementation.
package reconcile
