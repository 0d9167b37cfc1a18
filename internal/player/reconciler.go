package player

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ytmbar/ytmbar/internal/innertube"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// PlaybackState is the reconciler's view of whether the surface is playing.
type PlaybackState int

const (
	StateUnknown PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// TrackInfo is the authoritative now-playing snapshot shown to the user.
type TrackInfo struct {
	Title      string
	Artist     string
	ArtworkURL string
}

const (
	// waitingTitle is the sentinel shown before any valid metadata arrives.
	waitingTitle = "Waiting for music…"
	// placeholderTitle stands in when the surface itself reports the
	// sentinel back at us.
	placeholderTitle = "Unknown track"

	// echoWindow is how long after a local command contradictory state
	// events from the surface are treated as stale echoes.
	echoWindow = 800 * time.Millisecond
	// settleDelay is how long after entering Playing the volume re-assert
	// waits for the surface to finish its own transition.
	settleDelay = 500 * time.Millisecond

	timeThreshold     = 0.5
	durationThreshold = 1.0
	minDuration       = 1.0
)

// Snapshot is an immutable view of the authoritative playback state,
// published to subscribers after every accepted mutation.
type Snapshot struct {
	State       PlaybackState
	Track       TrackInfo
	CurrentTime float64
	Duration    float64
	CanNext     bool
	CanPrev     bool
	PlaylistID  string
	Queue       []models.Track
}

// QueueFetcher fetches the lookahead queue for a track. Implemented by
// [innertube.Client].
type QueueFetcher interface {
	Queue(ctx context.Context, videoID, playlistID string) ([]models.Track, error)
}

// Reconciler merges surface events with local command intent into one
// authoritative state. All fields below msgs are owned by the consumer loop;
// nothing else reads or writes them.
type Reconciler struct {
	surface Surface
	coord   *QueueCoordinator
	logger  *log.Logger
	volume  int

	msgs chan func()
	subs []chan Snapshot

	onTrackChange func(models.Track)

	state       PlaybackState
	track       TrackInfo
	currentTime float64
	duration    float64
	canNext     bool
	canPrev     bool
	playlistID  string
	queue       []models.Track
	pendingAt   time.Time

	now   func() time.Time
	after func(time.Duration, func())
}

// ReconcilerOpts contains configuration options for creating a Reconciler.
type ReconcilerOpts struct {
	Surface Surface
	Fetcher QueueFetcher
	Logger  *log.Logger
	// Volume is the target volume (0-100) re-asserted when playback starts.
	Volume int
	// OnTrackChange is called from the owning loop after every accepted
	// track replacement. Optional.
	OnTrackChange func(models.Track)
}

// NewReconciler creates a Reconciler. Run must be called before commands or
// events are delivered.
func NewReconciler(opts ReconcilerOpts) *Reconciler {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Volume <= 0 || opts.Volume > 100 {
		opts.Volume = 70
	}

	r := &Reconciler{
		surface:       opts.Surface,
		logger:        shared.WithLogger(opts.Logger, "module", "player"),
		volume:        opts.Volume,
		msgs:          make(chan func(), 128),
		onTrackChange: opts.OnTrackChange,
		track:         TrackInfo{Title: waitingTitle},
		now:           time.Now,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}

	r.coord = NewQueueCoordinator(opts.Fetcher, r.logger, func(items []models.Track) {
		r.post(func() { r.applyQueue(items) })
	})

	return r
}

// Run consumes messages until ctx is canceled. It is the only goroutine
// permitted to mutate reconciler state.
func (r *Reconciler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.msgs:
			msg()
		}
	}
}

// Subscribe returns a channel of state snapshots. Slow subscribers miss
// intermediate snapshots rather than blocking the loop.
func (r *Reconciler) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 8)
	r.post(func() {
		r.subs = append(r.subs, ch)
		ch <- r.snapshot()
	})
	return ch
}

// Deliver hands a validated bridge event to the reconciler.
func (r *Reconciler) Deliver(ev Event) {
	r.post(func() { r.handleEvent(ev) })
}

// TogglePlayPause optimistically flips play state and asks the surface to do
// the same.
func (r *Reconciler) TogglePlayPause() {
	r.post(func() { r.handleToggle() })
}

// Next skips to the next track.
func (r *Reconciler) Next() {
	r.post(func() { r.handleTransport(scriptNext) })
}

// Previous returns to the previous track.
func (r *Reconciler) Previous() {
	r.post(func() { r.handleTransport(scriptPrevious) })
}

// Seek moves playback to the given position in seconds.
func (r *Reconciler) Seek(seconds float64) {
	r.post(func() { r.handleTransport(scriptSeek(seconds)) })
}

// Play navigates the surface to a track, scoped to a playlist when given.
func (r *Reconciler) Play(videoID, playlistID string) {
	r.post(func() {
		r.pendingAt = r.now()
		r.surface.Navigate(watchURL(videoID, playlistID))
	})
}

func (r *Reconciler) post(fn func()) {
	select {
	case r.msgs <- fn:
	default:
		r.logger.Warn("message queue full, dropping")
	}
}

func (r *Reconciler) handleToggle() {
	r.pendingAt = r.now()

	// Flip before dispatch so the UI reflects intent without waiting for
	// the surface to echo. Unknown is treated as paused-by-toggle.
	if r.state == StatePlaying {
		r.setState(StatePaused)
	} else if r.state == StatePaused {
		r.setState(StatePlaying)
	} else {
		r.setState(StatePaused)
	}

	r.surface.Eval(scriptToggle)
}

func (r *Reconciler) handleTransport(script string) {
	r.pendingAt = r.now()
	r.surface.Eval(script)
}

func (r *Reconciler) handleEvent(ev Event) {
	switch ev := ev.(type) {
	case StateEvent:
		r.handleState(ev.IsPaused)
	case MetadataEvent:
		r.handleMetadata(ev)
	case TimeEvent:
		r.handleTime(ev)
	}
}

// handleState applies a reported play state unless it contradicts a command
// issued within the echo window. The surface emits stale intermediate states
// shortly after user-initiated changes, which would otherwise flicker the UI
// back and forth.
func (r *Reconciler) handleState(isPaused bool) {
	mapped := StatePlaying
	if isPaused {
		mapped = StatePaused
	}

	if r.now().Sub(r.pendingAt) < echoWindow && mapped != r.state {
		r.logger.Debug("dropping echoed state", "reported", mapped)
		return
	}

	r.setState(mapped)
}

func (r *Reconciler) handleMetadata(ev MetadataEvent) {
	// Playlist context is event-sourced, last write wins, never cleared
	// implicitly.
	if ev.PlaylistID != "" {
		r.playlistID = ev.PlaylistID
	}

	// Transport capabilities update independently of the title gate.
	r.canNext = ev.CanNext
	r.canPrev = ev.CanPrev

	if ev.Title != "" {
		title := ev.Title
		if title == waitingTitle {
			title = placeholderTitle
		}

		if title != r.track.Title || ev.Artist != r.track.Artist {
			r.track = TrackInfo{
				Title:      title,
				Artist:     ev.Artist,
				ArtworkURL: innertube.UpgradeArtwork(ev.Artwork),
			}
			r.logger.Info("track changed", "title", title, "artist", ev.Artist)

			if ev.VideoID != "" {
				playlistID := ev.PlaylistID
				if playlistID == "" {
					playlistID = r.playlistID
				}
				r.coord.Refresh(ev.VideoID, playlistID)

				if r.onTrackChange != nil {
					r.onTrackChange(models.Track{
						ID:         ev.VideoID,
						Title:      title,
						Artist:     ev.Artist,
						ArtworkURL: r.track.ArtworkURL,
					})
				}
			}
		}
	}

	r.handleState(ev.IsPaused)
	r.publish()
}

// handleTime coalesces the surface's high-frequency timer into meaningful
// position changes.
func (r *Reconciler) handleTime(ev TimeEvent) {
	duration := math.Max(ev.Duration, minDuration)

	if math.Abs(ev.CurrentTime-r.currentTime) <= timeThreshold &&
		math.Abs(duration-r.duration) <= durationThreshold {
		return
	}

	r.currentTime = ev.CurrentTime
	r.duration = duration
	r.publish()
}

func (r *Reconciler) setState(s PlaybackState) {
	entering := s == StatePlaying && r.state != StatePlaying
	r.state = s

	if entering {
		// The surface tends to silently reset audio output on navigation;
		// re-assert the target volume once it has settled. Best effort,
		// not part of the state machine's correctness.
		r.after(settleDelay, r.reassertVolume)
	}

	r.publish()
}

func (r *Reconciler) reassertVolume() {
	for _, script := range volumeScripts(r.volume) {
		r.surface.Eval(script)
	}
}

func (r *Reconciler) applyQueue(items []models.Track) {
	r.queue = items
	r.logger.Debug("queue replaced", "items", len(items))
	r.publish()
}

func (r *Reconciler) snapshot() Snapshot {
	queue := make([]models.Track, len(r.queue))
	copy(queue, r.queue)

	return Snapshot{
		State:       r.state,
		Track:       r.track,
		CurrentTime: r.currentTime,
		Duration:    r.duration,
		CanNext:     r.canNext,
		CanPrev:     r.canPrev,
		PlaylistID:  r.playlistID,
		Queue:       queue,
	}
}

func (r *Reconciler) publish() {
	snap := r.snapshot()
	for _, sub := range r.subs {
		select {
		case sub <- snap:
		default:
		}
	}
}
