// Package repositories implements SQLite persistence for listening history.
//
// The history store is a collaborator of the playback core, not a dependency:
// it observes accepted track changes and records them, and nothing in the
// reconciler reads it back. Sequence numbers give plays a stable
// human-readable order independent of row ids and wall-clock timestamps.
package repositories
