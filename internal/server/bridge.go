package server

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/ytmbar/ytmbar/internal/player"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// EventSink receives validated events read off the wire. Implemented by
// [player.Reconciler].
type EventSink interface {
	Deliver(ev player.Event)
}

// commandFrame is the outbound wire format. Exactly one of Script or URL is
// set, selected by Type.
type commandFrame struct {
	Type   string `json:"type"`
	Script string `json:"script,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Bridge owns at most one helper-script connection and implements
// [player.Surface] over it. A newly connecting script replaces the previous
// connection; commands issued while no script is connected are dropped, since
// the protocol has no acknowledgment or replay.
type Bridge struct {
	sink   EventSink
	logger *log.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewBridge creates a Bridge delivering inbound events to sink.
func NewBridge(sink EventSink, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Bridge{sink: sink, logger: shared.WithLogger(logger, "module", "bridge")}
}

// Connected reports whether a helper script is currently attached.
func (b *Bridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// Eval sends a script snippet to the player page. Fire and forget.
func (b *Bridge) Eval(script string) {
	b.send(commandFrame{Type: "eval", Script: script})
}

// Navigate points the player page at a new URL. Fire and forget.
func (b *Bridge) Navigate(url string) {
	b.send(commandFrame{Type: "navigate", URL: url})
}

func (b *Bridge) send(frame commandFrame) {
	b.mu.Lock()
	conn := b.conn
	if conn != nil {
		if err := conn.WriteJSON(frame); err != nil {
			b.logger.Warn("command write failed", "type", frame.Type, "error", err)
		}
	}
	b.mu.Unlock()

	if conn == nil {
		b.logger.Debug("no surface connected, dropping command", "type", frame.Type)
	}
}

// attach adopts a freshly upgraded connection and starts reading events from
// it. An existing connection is closed first; the page reloading or the
// extension reconnecting always wins.
func (b *Bridge) attach(conn *websocket.Conn) {
	b.mu.Lock()
	if b.conn != nil {
		b.conn.Close()
	}
	b.conn = conn
	b.mu.Unlock()

	b.logger.Info("surface connected", "remote", conn.RemoteAddr())
	go b.readLoop(conn)
}

func (b *Bridge) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			b.detach(conn)
			return
		}

		ev, ok := player.ParseEvent(data)
		if !ok {
			b.logger.Debug("dropping unrecognized frame")
			continue
		}
		b.sink.Deliver(ev)
	}
}

func (b *Bridge) detach(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()

	conn.Close()
	if b.conn == conn {
		b.conn = nil
		b.logger.Info("surface disconnected")
	}
}

// Close drops the active connection, if any.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
}
