package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
	tu "github.com/ytmbar/ytmbar/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := &tu.MockAPI{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("ensureAPI", func(t *testing.T) {
		t.Run("without cookie file", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: &shared.Config{}})

			_, err := runner.ensureAPI()
			if !errors.Is(err, shared.ErrAuthRequired) {
				t.Errorf("expected ErrAuthRequired, got %v", err)
			}
		})

		t.Run("with cookie file builds a client", func(t *testing.T) {
			cookiePath := filepath.Join(t.TempDir(), "cookies.txt")
			if err := os.WriteFile(cookiePath, []byte("SAPISID=abc; other=1"), 0600); err != nil {
				t.Fatal(err)
			}

			config := shared.DefaultConfig()
			config.Session.CookieFile = cookiePath

			runner := NewRunner(RunnerOpts{Config: config})

			api, err := runner.ensureAPI()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if api == nil {
				t.Fatal("expected a client")
			}

			again, _ := runner.ensureAPI()
			if again != api {
				t.Error("expected the client to be cached")
			}
		})

		t.Run("injected API wins", func(t *testing.T) {
			mock := &tu.MockAPI{}
			runner := NewRunner(RunnerOpts{API: mock})

			api, err := runner.ensureAPI()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if api != mock {
				t.Error("expected the injected API")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"k": "v"}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "{\"k\":\"v\"}\n" {
				t.Errorf("output = %q", output.String())
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"k": "v"}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output.String(), "  \"k\": \"v\"") {
				t.Errorf("output = %q", output.String())
			}
		})

		t.Run("failing writer", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON("x", false); err == nil {
				t.Error("expected a write error")
			}
		})
	})
}

func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{Name: "ytmbar", Commands: runner.register()}
	return app.Run(context.Background(), append([]string{"ytmbar"}, args...))
}

func TestSearchAction(t *testing.T) {
	t.Run("plain output", func(t *testing.T) {
		output := &bytes.Buffer{}
		mock := &tu.MockAPI{Tracks: []models.Track{
			{ID: "v1", Title: "Song A", Artist: "Artist A"},
			{ID: "v2", Title: "Song B"},
		}}
		runner := NewRunner(RunnerOpts{API: mock, Output: output})

		if err := runCommand(t, runner, "search", "song"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(mock.SearchQueries) != 1 || mock.SearchQueries[0] != "song" {
			t.Errorf("queries = %v", mock.SearchQueries)
		}
		for _, want := range []string{"Song A", "Artist A", "[v1]", "Song B"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("output missing %q:\n%s", want, output.String())
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		output := &bytes.Buffer{}
		mock := &tu.MockAPI{Tracks: []models.Track{{ID: "v1", Title: "Song A"}}}
		runner := NewRunner(RunnerOpts{API: mock, Output: output})

		if err := runCommand(t, runner, "search", "--json", "song"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), `"id": "v1"`) {
			t.Errorf("output = %s", output.String())
		}
	})

	t.Run("missing query", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{API: &tu.MockAPI{}, Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "search")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("api failure surfaces", func(t *testing.T) {
		mock := &tu.MockAPI{Err: shared.ErrProtocol}
		runner := NewRunner(RunnerOpts{API: mock, Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "search", "x")
		if !errors.Is(err, shared.ErrProtocol) {
			t.Errorf("expected ErrProtocol, got %v", err)
		}
	})
}

func TestQueueAction(t *testing.T) {
	output := &bytes.Buffer{}
	mock := &tu.MockAPI{Tracks: []models.Track{{ID: "n1", Title: "Up Next"}}}
	runner := NewRunner(RunnerOpts{API: mock, Output: output})

	if err := runCommand(t, runner, "queue", "--playlist", "PL1", "vid1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.QueueCalls) != 1 || mock.QueueCalls[0] != [2]string{"vid1", "PL1"} {
		t.Errorf("queue calls = %v", mock.QueueCalls)
	}
	if !strings.Contains(output.String(), "Up Next") {
		t.Errorf("output = %s", output.String())
	}
}

func TestLibraryAction(t *testing.T) {
	output := &bytes.Buffer{}
	mock := &tu.MockAPI{Playlists: []models.Playlist{{ID: "PL1", Title: "Mix", Subtitle: "20 songs"}}}
	runner := NewRunner(RunnerOpts{API: mock, Output: output})

	if err := runCommand(t, runner, "library"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Mix", "20 songs", "[PL1]"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSetupAction(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runCommand(t, runner, "setup", "--config", configPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("config file not created: %v", err)
		}
	})

	t.Run("verifies cookie file", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		cookiePath := filepath.Join(dir, "cookies.txt")
		if err := os.WriteFile(cookiePath, []byte("SAPISID=secret; VISITOR=1"), 0600); err != nil {
			t.Fatal(err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runCommand(t, runner, "setup", "--config", configPath, "--cookie-file", cookiePath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "verified") {
			t.Errorf("output = %s", output.String())
		}
	})

	t.Run("rejects cookie file without session", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		cookiePath := filepath.Join(dir, "cookies.txt")
		if err := os.WriteFile(cookiePath, []byte("VISITOR=1; PREF=x"), 0600); err != nil {
			t.Fatal(err)
		}

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		err := runCommand(t, runner, "setup", "--config", configPath, "--cookie-file", cookiePath)
		if !errors.Is(err, shared.ErrAuthRequired) {
			t.Errorf("expected ErrAuthRequired, got %v", err)
		}
	})
}

func TestHistoryAction(t *testing.T) {
	output := &bytes.Buffer{}
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "history.db")
	runner := NewRunner(RunnerOpts{Config: config, Output: output})

	if err := runCommand(t, runner, "history"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "No plays recorded") {
		t.Errorf("output = %s", output.String())
	}
}
