package player

import "encoding/json"

// Event is the closed set of inbound bridge events. Payloads are validated
// and tagged at the boundary; nothing partially trusted reaches the
// reconciler.
type Event interface {
	isEvent()
}

// MetadataEvent describes the track the surface is currently rendering.
type MetadataEvent struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Artwork    string `json:"artwork"`
	VideoID    string `json:"videoId"`
	PlaylistID string `json:"playlistId"`
	CanNext    bool   `json:"canNext"`
	CanPrev    bool   `json:"canPrev"`
	IsPaused   bool   `json:"isPaused"`
}

// TimeEvent reports playback position, emitted at high frequency.
type TimeEvent struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}

// StateEvent reports the surface's own play/pause state.
type StateEvent struct {
	IsPaused bool `json:"isPaused"`
}

func (MetadataEvent) isEvent() {}
func (TimeEvent) isEvent()     {}
func (StateEvent) isEvent()    {}

// ParseEvent validates a raw bridge payload into a known event variant.
// Unknown types and malformed payloads are discarded without error.
func ParseEvent(data []byte) (Event, bool) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false
	}

	switch probe.Type {
	case "metadata":
		var ev MetadataEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, false
		}
		return ev, true
	case "time":
		var ev TimeEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, false
		}
		return ev, true
	case "state":
		var ev StateEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, false
		}
		return ev, true
	default:
		return nil, false
	}
}
