package player

import "fmt"

// Surface is the one-way command channel into the rendering surface.
// Commands are fire and forget: the surface offers no acknowledgment, so
// confirmation only ever arrives later as ordinary inbound events subject to
// the usual reconciliation rules.
type Surface interface {
	// Eval injects a script snippet into the player page.
	Eval(script string)
	// Navigate points the player page at a new URL.
	Navigate(url string)
}

// Scripts injected into the player page for transport commands.
const (
	scriptToggle   = `document.querySelector('#play-pause-button')?.click();`
	scriptNext     = `document.querySelector('.next-button')?.click();`
	scriptPrevious = `document.querySelector('.previous-button')?.click();`
)

func scriptSeek(seconds float64) string {
	return fmt.Sprintf(`(() => { const v = document.querySelector('video'); if (v) v.currentTime = %.3f; })();`, seconds)
}

// volumeScripts re-asserts the target volume (0-100) through every control
// path the surface is known to honor. The surface silently resets audio
// output on certain navigations, and which path sticks varies by player
// build, so all three are driven redundantly.
func volumeScripts(level int) []string {
	return []string{
		fmt.Sprintf(`(() => { const v = document.querySelector('video'); if (v) v.volume = %.2f; })();`, float64(level)/100),
		fmt.Sprintf(`document.getElementById('movie_player')?.setVolume(%d);`, level),
		fmt.Sprintf(`document.querySelector('ytmusic-player-bar')?.playerApi?.setVolume(%d);`, level),
	}
}

// watchURL builds the player page URL for a track, scoped to a playlist when
// one is known.
func watchURL(videoID, playlistID string) string {
	url := "https://music.youtube.com/watch?v=" + videoID
	if playlistID != "" {
		url += "&list=" + playlistID
	}
	return url
}
