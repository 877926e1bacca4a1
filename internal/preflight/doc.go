// Package preflight provides readiness checks for the Radarr server, the
// notification channels and the filesystem paths collectarr depends on.
//
// The CLI "collectarr check" command runs RunAll and renders the results as
// a table. Checks never mutate anything: Radarr is only read, Telegram is
// probed with getMe, and the ntfy topic is validated without publishing.
package preflight
