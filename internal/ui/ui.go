package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ytmbar/ytmbar/internal/player"
)

const seekStep = 10.0

// Controller is the command surface the TUI drives. Implemented by
// [player.Reconciler].
type Controller interface {
	TogglePlayPause()
	Next()
	Previous()
	Seek(seconds float64)
	Play(videoID, playlistID string)
}

// Model represents the TUI application state.
type Model struct {
	controller Controller
	snapshots  <-chan player.Snapshot

	snap      player.Snapshot
	queueList list.Model
	width     int
	height    int
	ready     bool

	help help.Model
	keys keyMap
}

type snapshotMsg player.Snapshot

// NewModel creates a new TUI model driving controller and rendering the
// snapshot stream.
func NewModel(controller Controller, snapshots <-chan player.Snapshot) *Model {
	queueList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	queueList.Title = "Up next"
	queueList.SetShowHelp(false)
	queueList.SetFilteringEnabled(false)
	queueList.SetShowStatusBar(false)

	return &Model{
		controller: controller,
		snapshots:  snapshots,
		queueList:  queueList,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts listening for snapshots.
func (m *Model) Init() tea.Cmd {
	return m.waitForSnapshot()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.queueList.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case snapshotMsg:
		m.applySnapshot(player.Snapshot(msg))
		return m, m.waitForSnapshot()
	}

	var cmd tea.Cmd
	m.queueList, cmd = m.queueList.Update(msg)
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		m.controller.TogglePlayPause()
		return m, nil
	case key.Matches(msg, m.keys.next):
		if m.snap.CanNext {
			m.controller.Next()
		}
		return m, nil
	case key.Matches(msg, m.keys.previous):
		if m.snap.CanPrev {
			m.controller.Previous()
		}
		return m, nil
	case key.Matches(msg, m.keys.seekBack):
		m.controller.Seek(max(0, m.snap.CurrentTime-seekStep))
		return m, nil
	case key.Matches(msg, m.keys.seekFwd):
		m.controller.Seek(min(m.snap.Duration, m.snap.CurrentTime+seekStep))
		return m, nil
	case key.Matches(msg, m.keys.play):
		if item, ok := m.queueList.SelectedItem().(queueItem); ok {
			m.controller.Play(item.track.ID, m.snap.PlaylistID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.queueList, cmd = m.queueList.Update(msg)
	return m, cmd
}

func (m *Model) applySnapshot(snap player.Snapshot) {
	m.snap = snap
	m.ready = true

	items := make([]list.Item, len(snap.Queue))
	for i, track := range snap.Queue {
		items[i] = queueItem{track: track}
	}
	m.queueList.SetItems(items)
}

func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.snapshots
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(snap)
	}
}

// View renders the now-playing header, progress line, and queue.
func (m *Model) View() string {
	if !m.ready {
		return styles.help.Render("Connecting to player...")
	}

	var b strings.Builder

	b.WriteString(styles.state.Render(stateIcon(m.snap.State)))
	b.WriteString(" ")
	b.WriteString(styles.title.Render(m.snap.Track.Title))
	if m.snap.Track.Artist != "" {
		b.WriteString("  ")
		b.WriteString(styles.artist.Render(m.snap.Track.Artist))
	}
	b.WriteString("\n")

	b.WriteString(progressLine(m.snap.CurrentTime, m.snap.Duration, m.width))
	b.WriteString("\n\n")

	b.WriteString(m.queueList.View())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func stateIcon(s player.PlaybackState) string {
	switch s {
	case player.StatePlaying:
		return "▶"
	case player.StatePaused:
		return "⏸"
	default:
		return "·"
	}
}

// progressLine renders "m:ss ━━━╸──── m:ss" sized to the window.
func progressLine(current, duration float64, width int) string {
	barWidth := width - 14
	if barWidth < 10 {
		barWidth = 10
	}

	ratio := 0.0
	if duration > 0 {
		ratio = min(1, current/duration)
	}
	filled := int(ratio * float64(barWidth))

	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
	return fmt.Sprintf("%s %s %s", formatTime(current), bar, formatTime(duration))
}

func formatTime(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
