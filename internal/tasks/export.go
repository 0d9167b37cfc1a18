package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ytmbar/ytmbar/internal/formatter"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
	"golang.org/x/time/rate"
)

// LibraryAPI is the slice of the API client the export engine consumes.
type LibraryAPI interface {
	LibraryPlaylists(ctx context.Context) ([]models.Playlist, error)
	Playlist(ctx context.Context, playlistID string) ([]models.Track, error)
}

// ExportEngine snapshots library playlists to local files.
type ExportEngine struct {
	api LibraryAPI
}

// NewExportEngine creates an ExportEngine backed by api.
func NewExportEngine(api LibraryAPI) *ExportEngine {
	return &ExportEngine{api: api}
}

// ExportOpts contains configuration for library exports.
type ExportOpts struct {
	Format      string   // Export format: csv, markdown, txt
	OutputDir   string   // Base output directory (default: ytm_export_{epoch})
	NumWorkers  int      // Concurrent workers (default: 4)
	RateLimit   float64  // Playlist fetches per second (default: 2)
	PlaylistIDs []string // Specific playlists; empty exports the whole library
}

// PlaylistExportResult is the outcome of exporting one playlist.
type PlaylistExportResult struct {
	PlaylistID   string `json:"playlist_id"`
	PlaylistName string `json:"playlist_name"`
	File         string `json:"file,omitempty"`
	TrackCount   int    `json:"track_count"`
	Success      bool   `json:"success"`
	Error        error  `json:"-"`
	ErrorMessage string `json:"error,omitempty"`
}

// ExportResult summarizes a completed export run.
type ExportResult struct {
	TotalPlaylists    int                    `json:"total_playlists"`
	SuccessfulExports int                    `json:"successful_exports"`
	FailedExports     int                    `json:"failed_exports"`
	OutputDirectory   string                 `json:"output_directory"`
	ManifestPath      string                 `json:"manifest_path,omitempty"`
	Results           []PlaylistExportResult `json:"results"`
}

type exportJob struct {
	playlist models.Playlist
	step     int
}

// Run exports playlists concurrently with rate limiting and progress
// tracking. Partial failures are recorded per playlist; the run itself only
// fails when the library cannot be listed or the output directory cannot be
// prepared.
func (e *ExportEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: API client not initialized", shared.ErrAuthRequired)
	}
	if !formatter.ValidFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, opts.Format)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("ytm_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	playlists, err := e.resolvePlaylists(ctx, prog, opts.PlaylistIDs)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		TotalPlaylists:  len(playlists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(playlists)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan exportJob, len(playlists))
	results := make(chan PlaylistExportResult, len(playlists))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	for i, playlist := range playlists {
		jobs <- exportJob{playlist: playlist, step: i + 1}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportingUpdate(len(result.Results), len(playlists), res.PlaylistName))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(len(result.Results), len(playlists), res.PlaylistName, res.Error))
		}
	}

	sendProgress(prog, ProgressUpdate{Phase: WriteManifest, Message: "Writing manifest..."})

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// resolvePlaylists turns explicit ids into playlist records, or lists the
// whole library when none were given.
func (e *ExportEngine) resolvePlaylists(ctx context.Context, prog chan<- ProgressUpdate, ids []string) ([]models.Playlist, error) {
	sendProgress(prog, fetchLibraryUpdate())

	library, err := e.api.LibraryPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}

	if len(ids) == 0 {
		return library, nil
	}

	byID := make(map[string]models.Playlist, len(library))
	for _, pl := range library {
		byID[pl.ID] = pl
	}

	playlists := make([]models.Playlist, 0, len(ids))
	for _, id := range ids {
		if pl, ok := byID[id]; ok {
			playlists = append(playlists, pl)
			continue
		}
		// Not in the library listing; export it anyway under its id.
		playlists = append(playlists, models.Playlist{ID: id, Title: id})
	}

	return playlists, nil
}

// exportWorker drains jobs, fetching and writing one playlist at a time.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan exportJob,
	results chan<- PlaylistExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		results <- e.exportOne(ctx, job.playlist, opts)
	}
}

func (e *ExportEngine) exportOne(ctx context.Context, playlist models.Playlist, opts ExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Title,
	}

	tracks, err := e.api.Playlist(ctx, playlist.ID)
	if err != nil {
		result.Error = fmt.Errorf("failed to fetch playlist: %w", err)
		result.ErrorMessage = result.Error.Error()
		return result
	}

	path, err := formatter.WriteExport(opts.Format, opts.OutputDir, playlist, tracks)
	if err != nil {
		result.Error = err
		result.ErrorMessage = err.Error()
		return result
	}

	result.File = path
	result.TrackCount = len(tracks)
	result.Success = true
	return result
}

func writeManifest(result *ExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// sendProgress sends a progress update without blocking when no consumer is
// attached.
func sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
