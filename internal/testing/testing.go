// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"

	"github.com/ytmbar/ytmbar/internal/models"
)

// MockAPI is a canned test double for the CLI's API surface.
type MockAPI struct {
	Tracks    []models.Track
	Playlists []models.Playlist
	Err       error

	SearchQueries []string
	QueueCalls    [][2]string
}

func (m *MockAPI) Search(ctx context.Context, query string) ([]models.Track, error) {
	m.SearchQueries = append(m.SearchQueries, query)
	return m.Tracks, m.Err
}

func (m *MockAPI) LibraryPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return m.Playlists, m.Err
}

func (m *MockAPI) Playlist(ctx context.Context, playlistID string) ([]models.Track, error) {
	return m.Tracks, m.Err
}

func (m *MockAPI) Queue(ctx context.Context, videoID, playlistID string) ([]models.Track, error) {
	m.QueueCalls = append(m.QueueCalls, [2]string{videoID, playlistID})
	return m.Tracks, m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(target io.Writer, maxWrites int) *LimitedWriter {
	return &LimitedWriter{maxWrites: maxWrites, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
