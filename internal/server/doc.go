// package server hosts the local WebSocket endpoint the player page helper
// script connects to. Inbound frames are validated into player events;
// outbound frames carry fire-and-forget eval/navigate commands.
package server
