package innertube

import (
	"strings"

	"github.com/ytmbar/ytmbar/internal/models"
)

// Candidate path sets per call type. The first sequence that fully resolves
// wins; the alternatives cover the nesting variants observed across accounts
// and session states. None resolving yields an empty result, never an error.
var (
	searchSectionPaths = []path{
		{"contents", "tabbedSearchResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer", "contents"},
		{"contents", "sectionListRenderer", "contents"},
	}

	libraryItemPaths = []path{
		{"contents", "singleColumnBrowseResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer", "contents", 0, "gridRenderer", "items"},
		{"contents", "singleColumnBrowseResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer", "contents", 0, "itemSectionRenderer", "contents", 0, "gridRenderer", "items"},
		{"contents", "sectionListRenderer", "contents", 0, "gridRenderer", "items"},
	}

	playlistItemPaths = []path{
		{"contents", "singleColumnBrowseResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer", "contents", 0, "musicPlaylistShelfRenderer", "contents"},
		{"contents", "twoColumnBrowseResultsRenderer", "secondaryContents", "sectionListRenderer", "contents", 0, "musicPlaylistShelfRenderer", "contents"},
		{"contents", "sectionListRenderer", "contents", 0, "musicShelfRenderer", "contents"},
	}

	// Queue responses fan out at the root depending on whether /next was
	// called in a watch or a browse context: a single-column tabbed root, a
	// two-column root with two inner variants, then a plain tabbed descent.
	queueItemPaths = []path{
		{"contents", "singleColumnMusicWatchNextResultsRenderer", "tabbedRenderer", "watchNextTabbedResultsRenderer", "tabs", 0, "tabRenderer", "content", "musicQueueRenderer", "content", "playlistPanelRenderer", "contents"},
		{"contents", "twoColumnWatchNextResults", "playlist", "playlist", "contents"},
		{"contents", "twoColumnWatchNextResults", "secondaryContents", "sectionListRenderer", "contents", 0, "musicQueueRenderer", "content", "playlistPanelRenderer", "contents"},
		{"contents", "singleColumnMusicWatchNextResultsRenderer", "tabbedRenderer", "watchNextTabbedResultsRenderer", "tabs", 0, "tabRenderer", "content", "sectionListRenderer", "contents", 0, "musicQueueRenderer", "content", "playlistPanelRenderer", "contents"},
	}
)

// ExtractSearchResults pulls track results out of a raw /search response.
// Malformed sections and items are skipped individually.
func ExtractSearchResults(root map[string]any) []models.Track {
	var results []models.Track

	for _, section := range firstList(root, searchSectionPaths) {
		items, ok := digList(section, "musicShelfRenderer", "contents")
		if !ok {
			continue
		}

		for _, item := range items {
			if track, ok := trackItem(item); ok {
				results = append(results, track)
			}
		}
	}

	return results
}

// ExtractLibraryPlaylists pulls the playlist grid out of a raw library
// /browse response.
func ExtractLibraryPlaylists(root map[string]any) []models.Playlist {
	var playlists []models.Playlist

	for _, item := range firstList(root, libraryItemPaths) {
		node, ok := dig(item, "musicTwoRowItemRenderer")
		if !ok {
			continue
		}

		title, ok := firstRun(node, "title")
		if !ok || title == "" {
			continue
		}

		browseID, ok := digString(node, "navigationEndpoint", "browseEndpoint", "browseId")
		if !ok || browseID == "" {
			continue
		}

		playlist := models.Playlist{
			ID:       strings.TrimPrefix(browseID, browsePrefix),
			Title:    title,
			Subtitle: joinRuns(node, "subtitle"),
		}

		if url, ok := lastThumbnail(node, "thumbnailRenderer", "musicThumbnailRenderer", "thumbnail", "thumbnails"); ok {
			playlist.ArtworkURL = UpgradeArtwork(url)
		}

		playlists = append(playlists, playlist)
	}

	return playlists
}

// ExtractPlaylistTracks pulls the track listing out of a raw playlist /browse
// response.
func ExtractPlaylistTracks(root map[string]any) []models.Track {
	var tracks []models.Track

	for _, item := range firstList(root, playlistItemPaths) {
		if track, ok := trackItem(item); ok {
			tracks = append(tracks, track)
		}
	}

	return tracks
}

// ExtractQueue pulls the lookahead queue out of a raw /next response. All
// root variants converge on the same per-item classification.
func ExtractQueue(root map[string]any) []models.Track {
	var queue []models.Track

	for _, item := range firstList(root, queueItemPaths) {
		// Some sessions wrap panel entries an extra level deep.
		if wrapped, ok := dig(item, "playlistPanelVideoWrapperRenderer", "primaryRenderer"); ok {
			item = wrapped
		}

		if track, ok := trackItem(item); ok {
			queue = append(queue, track)
		}
	}

	return queue
}

// trackItem classifies an item node by renderer shape and extracts a track
// record. Unrecognized shapes, missing titles and unresolvable ids all reject
// the single item without affecting its siblings.
func trackItem(item any) (models.Track, bool) {
	if node, ok := dig(item, "musicResponsiveListItemRenderer"); ok {
		return listItem(node)
	}
	if node, ok := dig(item, "playlistPanelVideoRenderer"); ok {
		return panelItem(node)
	}
	return models.Track{}, false
}

// listItem extracts from the flat list shape used by search results and
// playlist listings.
func listItem(node any) (models.Track, bool) {
	title, ok := firstRun(node, "flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text")
	if !ok || title == "" {
		return models.Track{}, false
	}

	id, ok := listItemID(node)
	if !ok {
		return models.Track{}, false
	}

	track := models.Track{
		ID:     id,
		Title:  title,
		Artist: joinRuns(node, "flexColumns", 1, "musicResponsiveListItemFlexColumnRenderer", "text"),
	}

	if url, ok := lastThumbnail(node, "thumbnail", "musicThumbnailRenderer", "thumbnail", "thumbnails"); ok {
		track.ArtworkURL = UpgradeArtwork(url)
	}

	return track, true
}

// listItemID resolves the watch id of a flat list entry. Playlist rows carry
// it as a bracketed playlistItemData attribute; search rows put it on the
// title run's watch endpoint; older shapes only expose it via the play
// button overlay.
func listItemID(node any) (string, bool) {
	if id, ok := digString(node, "playlistItemData", "videoId"); ok && id != "" {
		return id, true
	}

	if id, ok := digString(node, "flexColumns", 0, "musicResponsiveListItemFlexColumnRenderer", "text", "runs", 0, "navigationEndpoint", "watchEndpoint", "videoId"); ok && id != "" {
		return id, true
	}

	if id, ok := digString(node, "overlay", "musicItemThumbnailOverlayRenderer", "content", "musicPlayButtonRenderer", "playNavigationEndpoint", "watchEndpoint", "videoId"); ok && id != "" {
		return id, true
	}

	return "", false
}

// panelItem extracts from the queue panel shape used by /next responses.
func panelItem(node any) (models.Track, bool) {
	title, ok := firstRun(node, "title")
	if !ok || title == "" {
		return models.Track{}, false
	}

	id, ok := digString(node, "videoId")
	if !ok || id == "" {
		id, ok = digString(node, "navigationEndpoint", "watchEndpoint", "videoId")
		if !ok || id == "" {
			return models.Track{}, false
		}
	}

	artist := joinRuns(node, "shortBylineText")
	if artist == "" {
		artist = joinRuns(node, "longBylineText")
	}

	track := models.Track{ID: id, Title: title, Artist: artist}

	if url, ok := lastThumbnail(node, "thumbnail", "thumbnails"); ok {
		track.ArtworkURL = UpgradeArtwork(url)
	}

	return track, true
}
