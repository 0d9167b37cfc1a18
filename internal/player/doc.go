// Package player owns the authoritative playback state.
//
// The rendering surface (an embedded YouTube Music web player) is foreign and
// only partially controlled: commands injected into it are fire and forget,
// and its own eventing is asynchronous and sometimes stale. The reconciler
// therefore merges inbound surface events with recently issued local commands,
// suppressing echo-induced flicker, and drives a queue-lookahead refresh when
// the playing track changes.
//
// All state lives behind a single consumer loop; commands and events become
// messages processed one at a time, so there are no concurrent writers.
package player
