// Package service implements the learning core's profile-scoped services:
// the profile registry with PIN-gated switching, the append-only activity
// ledger, the spaced-repetition review engine, the derived progress
// aggregator, and per-profile preferences.
//
// All services share one discipline: storage keys are re-derived from the
// current profile id at the moment of each read or write, and the
// profile-changed signal means "discard in-memory state and re-hydrate",
// never incremental reconciliation.
package service
