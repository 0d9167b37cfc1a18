// Package ui implements the now-playing terminal interface using bubbletea's
// Elm architecture.
//
// The [Model] subscribes to reconciler snapshots and renders the current
// track, play state, position, and queue lookahead. Key presses issue
// reconciler commands; the view never mutates playback state directly, it
// only reflects the next snapshot.
//
// Keyboard control uses vim-style bindings (space, n/p, h/l for seeking, j/k
// over the queue) with contextual help via charmbracelet/bubbles/help.
package ui
