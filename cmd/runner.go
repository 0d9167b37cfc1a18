package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/ytmbar/ytmbar/internal/innertube"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// musicAPI is the slice of [innertube.Client] the CLI commands consume.
type musicAPI interface {
	Search(ctx context.Context, query string) ([]models.Track, error)
	LibraryPlaylists(ctx context.Context) ([]models.Playlist, error)
	Playlist(ctx context.Context, playlistID string) ([]models.Track, error)
	Queue(ctx context.Context, videoID, playlistID string) ([]models.Track, error)
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	api        musicAPI
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	API        musicAPI
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, libraryCommand, playlistCommand, queueCommand, exportCommand, historyCommand, playCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// reloadConfig swaps in the config file named by the command's --config flag,
// when it exists. Actions fall back to the config loaded at startup.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	configPath := cmd.String("config")
	if configPath == "" {
		return
	}

	if _, err := os.Stat(configPath); err != nil {
		return
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, keeping current", "path", configPath, "error", err)
		return
	}
	r.config = config
}

// ensureAPI returns the injected API client or builds one from the configured
// browser session.
func (r *Runner) ensureAPI() (musicAPI, error) {
	if r.api != nil {
		return r.api, nil
	}

	if r.config.Session.CookieFile == "" {
		return nil, fmt.Errorf("%w: no cookie file configured, run 'ytmbar setup' first", shared.ErrAuthRequired)
	}

	cookies, err := shared.ParseCookieFile(r.config.Session.CookieFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthRequired, err)
	}

	r.api = innertube.NewClient(innertube.ClientOpts{
		Origin:     r.config.Session.Origin,
		Cookies:    cookies,
		HTTPClient: r.httpClient,
		Logger:     r.logger,
	})

	return r.api, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
