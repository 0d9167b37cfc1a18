// package tasks implements long-running library operations.
//
// The core abstraction is ExportEngine, which snapshots library playlists to
// local files with a bounded worker pool and client-side rate limiting.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks
