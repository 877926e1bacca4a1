// Package radarr is a minimal Radarr v3 REST client covering the endpoints the
// collection reconciler needs: collections, movies, quality profiles, root
// folders and system status.
//
// Every request carries the X-Api-Key header and exchanges JSON. Failures are
// tagged with the services sentinels: 401/403 map to ErrAuth, 404 to
// ErrNotFound, connection problems and other non-2xx answers to ErrTransport.
//
// The client also owns request pacing. An optional token bucket caps the
// overall request rate, and a minimum-interval gate spaces movie additions so
// the next AddMovie call waits until the configured delay has passed since the
// last successful creation. Neither mechanism retries.
package radarr
