// Package repositories implements SQLite persistence for cached directory data.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Station rows support soft deletes via deleted_at timestamps and are excluded from queries by default.
//
// Key Implementations:
//   - [StationRepository] : Validated station caching with stream URL lookups
//   - [StationCacheAdapter] : Deduplicating cache bridge for the discovery engine
//   - [LyricsCacheRepository] : Lyrics lookups keyed by artist and title with TTL purging
//
// Sequence numbers provide stable, human-readable ordering (e.g., station #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
