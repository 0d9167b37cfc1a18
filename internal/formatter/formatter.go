// package formatter renders track listings to export formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytmbar/ytmbar/internal/models"
	"github.com/ytmbar/ytmbar/internal/shared"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "markdown", "txt"}

// ValidFormat reports whether format names a supported export format.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ExportToCSV renders tracks as CSV with columns: ID, Title, Artist, Artwork URL
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Artwork URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{track.ID, track.Title, track.Artist, track.ArtworkURL}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders a playlist and its tracks as a Markdown document.
func ExportToMarkdown(playlist models.Playlist, tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Title))

	if playlist.Subtitle != "" {
		buf.WriteString(fmt.Sprintf("%s\n\n", playlist.Subtitle))
	}

	if playlist.ArtworkURL != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", playlist.ArtworkURL))
	}

	buf.WriteString(fmt.Sprintf("**Tracks:** %d\n\n", len(tracks)))
	buf.WriteString("| # | Title | Artist |\n")
	buf.WriteString("|---|-------|--------|\n")

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s |\n",
			i+1,
			escapeMarkdown(track.Title),
			escapeMarkdown(track.Artist),
		))
	}

	return buf.Bytes()
}

// ExportToText renders a playlist as a plain text listing.
func ExportToText(playlist models.Playlist, tracks []models.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(playlist.Title + "\n")
	buf.WriteString(strings.Repeat("=", len(playlist.Title)) + "\n\n")

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%3d. %s", i+1, track.Title))
		if track.Artist != "" {
			buf.WriteString(" — " + track.Artist)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// WriteExport renders tracks in the given format and writes them under dir,
// named for the playlist. Returns the written file path.
func WriteExport(format, dir string, playlist models.Playlist, tracks []models.Track) (string, error) {
	var data []byte
	var ext string
	var err error

	switch format {
	case "csv":
		ext = "csv"
		data, err = ExportToCSV(tracks)
		if err != nil {
			return "", err
		}
	case "markdown":
		ext = "md"
		data = ExportToMarkdown(playlist, tracks)
	case "txt":
		ext = "txt"
		data = ExportToText(playlist, tracks)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", sanitizeFilename(playlist.Title), ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// sanitizeFilename strips path separators and other unsafe characters so a
// playlist title can name a file.
func sanitizeFilename(name string) string {
	if name == "" {
		return "untitled"
	}

	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "", "?", "",
		"\"", "", "<", "", ">", "", "|", "-",
	)
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}

// escapeMarkdown escapes pipe characters that would break table rows.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
