package models

// Track is a playable catalog entry, used for search results and queue items.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
}

// Same reports whether both records describe the same upstream entity.
func (t Track) Same(other Track) bool {
	return t.ID != "" && t.ID == other.ID
}

// Playlist is a library playlist entry. Subtitle carries the upstream
// secondary line (owner, track count) verbatim.
type Playlist struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ArtworkURL string `json:"artworkUrl,omitempty"`
}
