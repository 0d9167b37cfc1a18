package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/repositories"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// Search searches the catalog and prints the track results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	api, err := r.ensureAPI()
	if err != nil {
		return err
	}

	r.logger.Info("searching", "query", query)

	tracks, err := api.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	return r.writeTracks(tracks)
}

// Library lists the user's library playlists.
func (r *Runner) Library(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	api, err := r.ensureAPI()
	if err != nil {
		return err
	}

	playlists, err := api.LibraryPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("library fetch failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("Library is empty\n")
	}

	for i, pl := range playlists {
		r.writePlain("%2d. %s", i+1, pl.Title)
		if pl.Subtitle != "" {
			r.writePlain("  (%s)", pl.Subtitle)
		}
		r.writePlain("  [%s]\n", pl.ID)
	}

	return nil
}

// Playlist lists the tracks of a playlist.
func (r *Runner) Playlist(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	api, err := r.ensureAPI()
	if err != nil {
		return err
	}

	tracks, err := api.Playlist(ctx, id)
	if err != nil {
		return fmt.Errorf("playlist fetch failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("Playlist %s has no readable tracks\n", id)
	}

	return r.writeTracks(tracks)
}

// Queue shows the lookahead queue for a track.
func (r *Runner) Queue(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	videoID := cmd.StringArg("video-id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	api, err := r.ensureAPI()
	if err != nil {
		return err
	}

	tracks, err := api.Queue(ctx, videoID, cmd.String("playlist"))
	if err != nil {
		return fmt.Errorf("queue fetch failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if len(tracks) == 0 {
		return r.writePlain("No queue available for %s\n", videoID)
	}

	return r.writeTracks(tracks)
}

// History lists recent plays from the local database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	if r.config.Database.Path == "" {
		return fmt.Errorf("%w: no database path configured", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		return err
	}

	plays, err := repositories.NewHistoryRepository(db).Recent(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("history query failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(plays, cmd.Bool("pretty"))
	}

	if len(plays) == 0 {
		return r.writePlain("No plays recorded yet\n")
	}

	for _, p := range plays {
		r.writePlain("%s  %s", p.PlayedAt.Local().Format("2006-01-02 15:04"), p.Title)
		if p.Artist != "" {
			r.writePlain(" — %s", p.Artist)
		}
		r.writePlain("  [%s]\n", p.VideoID)
	}

	return nil
}

func (r *Runner) writeTracks(tracks []models.Track) error {
	for i, track := range tracks {
		r.writePlain("%2d. %s", i+1, track.Title)
		if track.Artist != "" {
			r.writePlain(" — %s", track.Artist)
		}
		if err := r.writePlain("  [%s]\n", track.ID); err != nil {
			return err
		}
	}
	return nil
}
