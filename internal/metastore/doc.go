// Package metastore persists per-frame original luminance across runs.
//
// The store is injected into the luminance computer as a capability rather
// than reached through ambient state, so the caching contract that keeps
// re-runs cheap is testable with an in-memory fake. Two backends ship:
// sidecar JSON files next to each frame (the default), and a single SQLite
// database for sequences on read-only media.
package metastore
