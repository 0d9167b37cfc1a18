package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// Play is one recorded listen.
type Play struct {
	ID       string
	Sequence int
	VideoID  string
	Title    string
	Artist   string
	PlayedAt time.Time
}

// HistoryRepository records and queries listening history.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a HistoryRepository with the given database
// connection. InitSchema must run once before use.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// InitSchema creates the history tables if they do not exist and seeds the
// sequence counter.
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plays (
			id TEXT PRIMARY KEY,
			sequence INTEGER NOT NULL,
			video_id TEXT NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL DEFAULT '',
			played_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_plays_played_at ON plays(played_at)`,
		`CREATE TABLE IF NOT EXISTS plays_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			value INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO plays_sequence (id, value) VALUES (1, 0)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply history schema: %w", err)
		}
	}

	return nil
}

// Record inserts a play for the given track with a generated ID and sequence.
// Tracks without a video id are not recordable.
func (r *HistoryRepository) Record(track models.Track) error {
	if track.ID == "" {
		return fmt.Errorf("%w: track has no video id", shared.ErrInvalidArgument)
	}

	sequence, err := NextSequence(r.db, "plays")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO plays (id, sequence, video_id, title, artist, played_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		sequence,
		track.ID,
		track.Title,
		track.Artist,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert play: %w", err)
	}

	return nil
}

// Recent returns up to limit plays, most recent first.
func (r *HistoryRepository) Recent(limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, sequence, video_id, title, artist, played_at
		FROM plays
		ORDER BY sequence DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		if err := rows.Scan(&p.ID, &p.Sequence, &p.VideoID, &p.Title, &p.Artist, &p.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		plays = append(plays, p)
	}

	return plays, rows.Err()
}

// Last returns the most recent play, or sql.ErrNoRows when history is empty.
func (r *HistoryRepository) Last() (Play, error) {
	query := `
		SELECT id, sequence, video_id, title, artist, played_at
		FROM plays
		ORDER BY sequence DESC
		LIMIT 1
	`

	var p Play
	err := r.db.QueryRow(query).Scan(&p.ID, &p.Sequence, &p.VideoID, &p.Title, &p.Artist, &p.PlayedAt)
	if err != nil {
		return Play{}, err
	}

	return p, nil
}
