// Package services defines shared utilities consumed by the reconciliation
// runner and the external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and collection names for
//     logging.
//   - Structured error markers plus the Wrap helper that let callers tell
//     fatal precondition failures apart from per-item failures.
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across the job.
package services
