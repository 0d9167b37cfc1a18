package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/ytmbar/ytmbar/internal/innertube"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// Setup creates a config file from the embedded template and, when a cookie
// file is given, verifies that it yields a signable browser session.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	cookieFile := cmd.String("cookie-file")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.logger.Info("config file created", "path", configPath)
		r.writePlain("✓ Created %s\n", configPath)
	}

	if cookieFile == "" {
		r.writePlain("Next steps:\n")
		r.writePlain("1. In a music.youtube.com tab, copy a request as cURL from DevTools\n")
		r.writePlain("2. Save it to a file and set session.cookie_file in %s\n", configPath)
		r.writePlain("3. Re-run 'ytmbar setup --cookie-file <file>' to verify\n")
		return nil
	}

	cookies, err := shared.ParseCookieFile(cookieFile)
	if err != nil {
		return fmt.Errorf("failed to parse cookie file: %w", err)
	}

	origin := r.config.Session.Origin
	if origin == "" {
		origin = "https://music.youtube.com"
	}

	if _, err := innertube.AuthToken(cookies, origin, time.Now().Unix()); err != nil {
		return fmt.Errorf("cookie file has no usable session: %w", err)
	}

	r.logger.Info("browser session verified", "cookies", len(cookies))
	r.writePlain("✓ Session cookies verified (%d cookies)\n", len(cookies))
	r.writePlain("Set session.cookie_file = %q in %s\n", cookieFile, configPath)

	return nil
}
