package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/ytmbar/ytmbar/internal/formatter"
	"github.com/ytmbar/ytmbar/internal/tasks"
)

// Export snapshots library playlists to local files.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	api, err := r.ensureAPI()
	if err != nil {
		return err
	}

	engine := tasks.NewExportEngine(api)
	prog := make(chan tasks.ProgressUpdate, 50)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Run(ctx, prog, tasks.ExportOpts{
		Format:      cmd.String("format"),
		OutputDir:   cmd.String("output"),
		NumWorkers:  int(cmd.Int("workers")),
		PlaylistIDs: cmd.StringArgs("ids"),
	})
	close(prog)
	<-done

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d/%d playlists to %s\n",
		result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)

	if result.FailedExports > 0 {
		r.writePlain("%d playlists failed:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  • %s: %s\n", res.PlaylistName, res.ErrorMessage)
			}
		}
	}

	return nil
}

// exportCommand snapshots library playlists to local files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export library playlists to local files",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "ids", Min: 0, Max: -1},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   fmt.Sprintf("Export format (%s)", strings.Join(formatter.Formats, ", ")),
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
				Value: 4,
			},
		},
		Action: r.Export,
	}
}
