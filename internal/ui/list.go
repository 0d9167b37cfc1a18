package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/ytmbar/ytmbar/internal/models"
)

var _ list.Item = queueItem{}

// queueItem wraps [models.Track] to implement [list.Item].
type queueItem struct {
	track models.Track
}

func (i queueItem) FilterValue() string { return i.track.Title }
func (i queueItem) Title() string       { return i.track.Title }
func (i queueItem) Description() string {
	if i.track.Artist == "" {
		return "—"
	}
	return i.track.Artist
}
