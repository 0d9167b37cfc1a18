package innertube

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var root map[string]any
	if err := json.Unmarshal([]byte(raw), &root); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return root
}

const searchFixture = `{
  "contents": {
    "tabbedSearchResultsRenderer": {
      "tabs": [{
        "tabRenderer": {
          "content": {
            "sectionListRenderer": {
              "contents": [{
                "musicShelfRenderer": {
                  "contents": [
                    {
                      "musicResponsiveListItemRenderer": {
                        "thumbnail": {"musicThumbnailRenderer": {"thumbnail": {"thumbnails": [
                          {"url": "https://img.example/a=w40-h40", "width": 40},
                          {"url": "https://img.example/a=w60-h60", "width": 60}
                        ]}}},
                        "flexColumns": [
                          {"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [
                            {"text": "Song A", "navigationEndpoint": {"watchEndpoint": {"videoId": "abc123"}}}
                          ]}}},
                          {"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [
                            {"text": "Artist A"}
                          ]}}}
                        ]
                      }
                    },
                    {
                      "musicResponsiveListItemRenderer": {
                        "flexColumns": [
                          {"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": []}}}
                        ]
                      }
                    },
                    {"someUnknownRenderer": {"whatever": true}}
                  ]
                }
              }]
            }
          }
        }
      }]
    }
  }
}`

func TestExtractSearchResults(t *testing.T) {
	t.Run("end to end with malformed siblings", func(t *testing.T) {
		results := ExtractSearchResults(decode(t, searchFixture))

		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}

		got := results[0]
		if got.ID != "abc123" {
			t.Errorf("id = %s, want abc123", got.ID)
		}
		if got.Title != "Song A" {
			t.Errorf("title = %s, want Song A", got.Title)
		}
		if got.Artist != "Artist A" {
			t.Errorf("artist = %s, want Artist A", got.Artist)
		}
		if got.ArtworkURL != "https://img.example/a=w544-h544" {
			t.Errorf("artwork = %s, want upgraded w544-h544 url", got.ArtworkURL)
		}
	})

	t.Run("flat section variant", func(t *testing.T) {
		raw := `{"contents": {"sectionListRenderer": {"contents": [{
			"musicShelfRenderer": {"contents": [{
				"musicResponsiveListItemRenderer": {
					"playlistItemData": {"videoId": "vid9"},
					"flexColumns": [
						{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Other"}]}}}
					]
				}
			}]}
		}]}}}`

		results := ExtractSearchResults(decode(t, raw))
		if len(results) != 1 || results[0].ID != "vid9" {
			t.Fatalf("expected vid9 from alternate shape, got %v", results)
		}
	})

	t.Run("never fails on malformed roots", func(t *testing.T) {
		tt := []string{
			`{}`,
			`{"contents": {}}`,
			`{"contents": {"tabbedSearchResultsRenderer": {"tabs": []}}}`,
			`{"contents": {"tabbedSearchResultsRenderer": {"tabs": [{"tabRenderer": {}}]}}}`,
			`{"contents": {"sectionListRenderer": {"contents": [{"musicShelfRenderer": {"contents": "bogus"}}]}}}`,
		}

		for _, raw := range tt {
			if results := ExtractSearchResults(decode(t, raw)); len(results) != 0 {
				t.Errorf("fixture %s: expected empty results, got %v", raw, results)
			}
		}
	})
}

func TestExtractLibraryPlaylists(t *testing.T) {
	raw := `{"contents": {"singleColumnBrowseResultsRenderer": {"tabs": [{"tabRenderer": {"content": {
		"sectionListRenderer": {"contents": [{"gridRenderer": {"items": [
			{
				"musicTwoRowItemRenderer": {
					"title": {"runs": [{"text": "Road Trip"}]},
					"subtitle": {"runs": [{"text": "Playlist"}, {"text": " • "}, {"text": "42 tracks"}]},
					"navigationEndpoint": {"browseEndpoint": {"browseId": "VLPL123"}},
					"thumbnailRenderer": {"musicThumbnailRenderer": {"thumbnail": {"thumbnails": [
						{"url": "https://img.example/p=w226-h226"}
					]}}}
				}
			},
			{"musicTwoRowItemRenderer": {"title": {"runs": [{"text": "No Endpoint"}]}}},
			{"garbage": 3}
		]}}]}
	}}}]}}}`

	playlists := ExtractLibraryPlaylists(decode(t, raw))
	if len(playlists) != 1 {
		t.Fatalf("expected 1 playlist, got %d", len(playlists))
	}

	got := playlists[0]
	if got.ID != "PL123" {
		t.Errorf("id = %s, want PL123 (marker stripped)", got.ID)
	}
	if got.Subtitle != "Playlist • 42 tracks" {
		t.Errorf("subtitle = %q, want concatenated runs", got.Subtitle)
	}
	if got.ArtworkURL != "https://img.example/p=w544-h544" {
		t.Errorf("artwork = %s", got.ArtworkURL)
	}
}

func TestExtractPlaylistTracks(t *testing.T) {
	t.Run("two column variant", func(t *testing.T) {
		raw := `{"contents": {"twoColumnBrowseResultsRenderer": {"secondaryContents": {
			"sectionListRenderer": {"contents": [{"musicPlaylistShelfRenderer": {"contents": [
				{
					"musicResponsiveListItemRenderer": {
						"playlistItemData": {"videoId": "track1"},
						"flexColumns": [
							{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "First"}]}}},
							{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Someone"}]}}}
						]
					}
				}
			]}}]}
		}}}}`

		tracks := ExtractPlaylistTracks(decode(t, raw))
		if len(tracks) != 1 || tracks[0].ID != "track1" || tracks[0].Artist != "Someone" {
			t.Fatalf("unexpected tracks %v", tracks)
		}
	})

	t.Run("missing artist yields empty string not a skip", func(t *testing.T) {
		raw := `{"contents": {"sectionListRenderer": {"contents": [{"musicShelfRenderer": {"contents": [
			{
				"musicResponsiveListItemRenderer": {
					"playlistItemData": {"videoId": "lonely"},
					"flexColumns": [
						{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Solo"}]}}}
					]
				}
			}
		]}}]}}}`

		tracks := ExtractPlaylistTracks(decode(t, raw))
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Artist != "" {
			t.Errorf("artist = %q, want empty", tracks[0].Artist)
		}
		if tracks[0].ArtworkURL != "" {
			t.Errorf("artwork = %q, want empty", tracks[0].ArtworkURL)
		}
	})
}

func TestExtractQueue(t *testing.T) {
	panelItems := `[
		{
			"playlistPanelVideoRenderer": {
				"videoId": "q1",
				"title": {"runs": [{"text": "Queued One"}]},
				"shortBylineText": {"runs": [{"text": "Band"}]},
				"thumbnail": {"thumbnails": [{"url": "https://img.example/q=s60"}]}
			}
		},
		{
			"playlistPanelVideoWrapperRenderer": {"primaryRenderer": {
				"playlistPanelVideoRenderer": {
					"videoId": "q2",
					"title": {"runs": [{"text": "Queued Two"}]}
				}
			}}
		},
		{"playlistPanelVideoRenderer": {"title": {"runs": [{"text": "No Id"}]}}}
	]`

	roots := map[string]string{
		"single column tabbed": `{"contents": {"singleColumnMusicWatchNextResultsRenderer": {"tabbedRenderer": {"watchNextTabbedResultsRenderer": {"tabs": [{"tabRenderer": {"content": {"musicQueueRenderer": {"content": {"playlistPanelRenderer": {"contents": ` + panelItems + `}}}}}}]}}}}}`,
		"two column playlist":  `{"contents": {"twoColumnWatchNextResults": {"playlist": {"playlist": {"contents": ` + panelItems + `}}}}}`,
		"two column secondary": `{"contents": {"twoColumnWatchNextResults": {"secondaryContents": {"sectionListRenderer": {"contents": [{"musicQueueRenderer": {"content": {"playlistPanelRenderer": {"contents": ` + panelItems + `}}}}]}}}}}`,
	}

	for name, raw := range roots {
		t.Run(name, func(t *testing.T) {
			queue := ExtractQueue(decode(t, raw))

			if len(queue) != 2 {
				t.Fatalf("expected 2 items, got %d", len(queue))
			}
			if queue[0].ID != "q1" || queue[1].ID != "q2" {
				t.Errorf("unexpected ids %s, %s", queue[0].ID, queue[1].ID)
			}
			if queue[0].Artist != "Band" {
				t.Errorf("artist = %s, want Band", queue[0].Artist)
			}
			if queue[0].ArtworkURL != "https://img.example/q=s544" {
				t.Errorf("artwork = %s", queue[0].ArtworkURL)
			}
		})
	}

	t.Run("empty object", func(t *testing.T) {
		if queue := ExtractQueue(decode(t, `{}`)); len(queue) != 0 {
			t.Errorf("expected empty queue, got %v", queue)
		}
	})
}

func TestDig(t *testing.T) {
	root := decode(t, `{"a": {"b": [{"c": "found"}]}}`)

	t.Run("resolves full path", func(t *testing.T) {
		if v, ok := digString(root, "a", "b", 0, "c"); !ok || v != "found" {
			t.Errorf("digString = %v, %v", v, ok)
		}
	})

	t.Run("fails on missing field", func(t *testing.T) {
		if _, ok := dig(root, "a", "x"); ok {
			t.Error("expected miss")
		}
	})

	t.Run("fails on index out of range", func(t *testing.T) {
		if _, ok := dig(root, "a", "b", 3); ok {
			t.Error("expected miss")
		}
	})

	t.Run("fails on shape mismatch", func(t *testing.T) {
		if _, ok := dig(root, "a", 0); ok {
			t.Error("expected miss on indexing an object")
		}
		if _, ok := dig(root, "a", "b", 0, "c", "d"); ok {
			t.Error("expected miss on descending into a string")
		}
	})
}
