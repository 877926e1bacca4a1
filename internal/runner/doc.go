// Package runner drives one reconciliation pass end to end: it resolves the
// default quality profile and root folder, lists collections, hands them to
// the reconcile engine and sends a single report when something changed.
//
// Missing defaults and failures to list collections abort the run before any
// mutation. Delivery failures are logged and recorded on the Result only.
package runner
