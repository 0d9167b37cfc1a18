package player

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/ytmbar/ytmbar/internal/models"
)

// QueueCoordinator refreshes the lookahead queue when the playing track
// changes. It holds no state beyond the in-flight fetch it issued; results
// are delivered back onto the owning loop via apply, in arrival order. A
// slower stale response can therefore overwrite a newer one — accepted
// trade-off, matching the no-cancellation model.
type QueueCoordinator struct {
	fetcher QueueFetcher
	logger  *log.Logger
	apply   func([]models.Track)
}

// NewQueueCoordinator creates a coordinator that fetches with fetcher and
// hands results to apply.
func NewQueueCoordinator(fetcher QueueFetcher, logger *log.Logger, apply func([]models.Track)) *QueueCoordinator {
	return &QueueCoordinator{fetcher: fetcher, logger: logger, apply: apply}
}

// Refresh fetches the queue for a track asynchronously. No-op without a
// video id. Failures are logged and the previous queue is left untouched;
// this is a background refresh with no user-visible error.
func (q *QueueCoordinator) Refresh(videoID, playlistID string) {
	if videoID == "" || q.fetcher == nil {
		return
	}

	go func() {
		items, err := q.fetcher.Queue(context.Background(), videoID, playlistID)
		if err != nil {
			q.logger.Warn("queue refresh failed", "video_id", videoID, "error", err)
			return
		}
		q.apply(items)
	}()
}
