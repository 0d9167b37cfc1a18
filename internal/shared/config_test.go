package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Session.Origin != "https://music.youtube.com" {
			t.Errorf("expected origin https://music.youtube.com, got %s", config.Session.Origin)
		}

		if config.Bridge.Listen != "127.0.0.1:8973" {
			t.Errorf("expected bridge listen 127.0.0.1:8973, got %s", config.Bridge.Listen)
		}

		if config.Player.Volume != 70 {
			t.Errorf("expected volume 70, got %d", config.Player.Volume)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Session.Origin != DefaultConfig().Session.Origin {
			t.Errorf("created config origin doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[session]
cookie_file = "/home/me/.ytmbar/cookies.txt"
origin = "https://music.youtube.com"

[bridge]
listen = "0.0.0.0:9000"

[player]
volume = 40

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Session.CookieFile != "/home/me/.ytmbar/cookies.txt" {
			t.Errorf("unexpected cookie_file %s", config.Session.CookieFile)
		}

		if config.Bridge.Listen != "0.0.0.0:9000" {
			t.Errorf("unexpected bridge listen %s", config.Bridge.Listen)
		}

		if config.Player.Volume != 40 {
			t.Errorf("unexpected volume %d", config.Player.Volume)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config")
		}
	})
}
