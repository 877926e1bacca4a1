// Package main hosts the collectarr CLI.
//
// Invoked without a subcommand it performs one reconciliation pass against
// Radarr and exits, which makes it suitable for cron or a systemd timer. The
// check, test-notify and config subcommands help set up and verify a
// deployment. Exit status is 0 on completion, 1 when a run precondition fails
// and 2 when the configuration cannot be loaded.
package main
