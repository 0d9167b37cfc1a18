package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with the schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	return db
}

func TestHistoryRepository(t *testing.T) {
	t.Run("Record", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHistoryRepository(db)

		err := repo.Record(models.Track{ID: "v1", Title: "Song", Artist: "Band"})
		if err != nil {
			t.Fatalf("failed to record play: %v", err)
		}

		plays, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("failed to query plays: %v", err)
		}
		if len(plays) != 1 {
			t.Fatalf("expected 1 play, got %d", len(plays))
		}
		if plays[0].VideoID != "v1" || plays[0].Title != "Song" {
			t.Errorf("unexpected play %+v", plays[0])
		}
		if plays[0].ID == "" {
			t.Error("play ID should be set")
		}
	})

	t.Run("Record rejects missing video id", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHistoryRepository(db)

		err := repo.Record(models.Track{Title: "No ID"})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Recent orders newest first", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHistoryRepository(db)

		for _, id := range []string{"a", "b", "c"} {
			if err := repo.Record(models.Track{ID: id, Title: id}); err != nil {
				t.Fatalf("failed to record %s: %v", id, err)
			}
		}

		plays, err := repo.Recent(2)
		if err != nil {
			t.Fatalf("failed to query plays: %v", err)
		}
		if len(plays) != 2 {
			t.Fatalf("expected 2 plays, got %d", len(plays))
		}
		if plays[0].VideoID != "c" || plays[1].VideoID != "b" {
			t.Errorf("unexpected order: %s, %s", plays[0].VideoID, plays[1].VideoID)
		}
	})

	t.Run("Last", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewHistoryRepository(db)

		if _, err := repo.Last(); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("expected sql.ErrNoRows on empty history, got %v", err)
		}

		repo.Record(models.Track{ID: "x", Title: "X"})
		repo.Record(models.Track{ID: "y", Title: "Y"})

		last, err := repo.Last()
		if err != nil {
			t.Fatalf("failed to get last play: %v", err)
		}
		if last.VideoID != "y" {
			t.Errorf("last = %s, want y", last.VideoID)
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)

	seq1, err := NextSequence(db, "plays")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}
	seq2, err := NextSequence(db, "plays")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	if seq2 != seq1+1 {
		t.Errorf("sequence did not increment: %d then %d", seq1, seq2)
	}
}
