// Package notifications delivers the run report to Telegram and ntfy.
//
// NewService inspects the configuration and returns a single channel, a
// fan-out over both, or a no-op when nothing is configured. Fan-out attempts
// every channel and joins the failures, so one broken channel never hides
// another. Every failure is tagged with services.ErrDelivery; callers log it
// and move on. Nothing here retries.
package notifications
