package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"github.com/ytmbar/ytmbar/internal/innertube"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/player"
	"github.com/ytmbar/ytmbar/internal/repositories"
	"github.com/ytmbar/ytmbar/internal/server"
	"github.com/ytmbar/ytmbar/internal/shared"
	"github.com/ytmbar/ytmbar/internal/ui"
)

// sinkFunc adapts a function to [server.EventSink]. The bridge is built
// before the reconciler, so the sink closes over a late-bound reference.
type sinkFunc func(player.Event)

func (f sinkFunc) Deliver(ev player.Event) { f(ev) }

// Play runs the bridge server, the reconciler, and (unless headless) the
// now-playing TUI until interrupted.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	if r.config.Session.CookieFile == "" {
		return fmt.Errorf("%w: no cookie file configured, run 'ytmbar setup' first", shared.ErrAuthRequired)
	}

	cookies, err := shared.ParseCookieFile(r.config.Session.CookieFile)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthRequired, err)
	}

	client := innertube.NewClient(innertube.ClientOpts{
		Origin:     r.config.Session.Origin,
		Cookies:    cookies,
		HTTPClient: r.httpClient,
		Logger:     r.logger,
	})

	onTrackChange, closeHistory, err := r.historyHook()
	if err != nil {
		r.logger.Warn("history disabled", "error", err)
	}
	if closeHistory != nil {
		defer closeHistory()
	}

	var rec *player.Reconciler
	bridge := server.NewBridge(sinkFunc(func(ev player.Event) { rec.Deliver(ev) }), r.logger)
	rec = player.NewReconciler(player.ReconcilerOpts{
		Surface:       bridge,
		Fetcher:       client,
		Logger:        r.logger,
		Volume:        r.config.Player.Volume,
		OnTrackChange: onTrackChange,
	})

	runCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go rec.Run(runCtx)

	srv := server.NewServer(r.config.Bridge.Listen, bridge, r.logger)
	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe(runCtx)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	if cmd.Bool("headless") {
		r.logger.Info("running headless", "listen", r.config.Bridge.Listen)
		select {
		case <-runCtx.Done():
			return nil
		case err, ok := <-serverErr:
			if ok {
				return fmt.Errorf("bridge server failed: %w", err)
			}
			return nil
		}
	}

	model := ui.NewModel(rec, rec.Subscribe())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(runCtx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("interface failed: %w", err)
	}

	return nil
}

// historyHook opens the play-history database and returns a reconciler hook
// recording accepted track changes, plus a closer. History is optional: any
// failure here degrades to playback without recording.
func (r *Runner) historyHook() (func(models.Track), func(), error) {
	if r.config.Database.Path == "" {
		return nil, nil, fmt.Errorf("%w: no database path configured", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := repositories.InitSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := repositories.NewHistoryRepository(db)
	hook := func(track models.Track) {
		if err := repo.Record(track); err != nil {
			r.logger.Warn("failed to record play", "video_id", track.ID, "error", err)
		}
	}

	return hook, func() { db.Close() }, nil
}
