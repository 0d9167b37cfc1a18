package innertube

// path is one candidate field-descent sequence through a decoded response.
// Steps are either string field names or int array indexes. New response
// shapes are handled by adding candidate paths, not control flow.
type path []any

// dig walks root along steps and returns the node it lands on. It resolves
// fully or not at all: any missing field, wrong shape or out-of-range index
// fails the whole descent.
func dig(root any, steps ...any) (any, bool) {
	node := root
	for _, step := range steps {
		switch s := step.(type) {
		case string:
			obj, ok := node.(map[string]any)
			if !ok {
				return nil, false
			}
			if node, ok = obj[s]; !ok {
				return nil, false
			}
		case int:
			arr, ok := node.([]any)
			if !ok || s < 0 || s >= len(arr) {
				return nil, false
			}
			node = arr[s]
		default:
			return nil, false
		}
	}
	return node, true
}

// digList is dig for descents that must end at an array.
func digList(root any, steps ...any) ([]any, bool) {
	node, ok := dig(root, steps...)
	if !ok {
		return nil, false
	}
	arr, ok := node.([]any)
	return arr, ok
}

// digString is dig for descents that must end at a string.
func digString(root any, steps ...any) (string, bool) {
	node, ok := dig(root, steps...)
	if !ok {
		return "", false
	}
	s, ok := node.(string)
	return s, ok
}

// firstList returns the item array of the first candidate that fully
// resolves, or nil when none do.
func firstList(root any, candidates []path) []any {
	for _, p := range candidates {
		if items, ok := digList(root, p...); ok {
			return items
		}
	}
	return nil
}

// firstRun returns the text of the first run under the text object located by
// steps. This is where item titles live.
func firstRun(root any, steps ...any) (string, bool) {
	return digString(root, append(append(path{}, steps...), "runs", 0, "text")...)
}

// joinRuns concatenates every run text under the text object located by
// steps. Secondary lines (artist, subtitle) arrive as multiple runs with
// separator runs in between; upstream renders them concatenated.
func joinRuns(root any, steps ...any) string {
	runs, ok := digList(root, append(append(path{}, steps...), "runs")...)
	if !ok {
		return ""
	}

	var out string
	for _, run := range runs {
		if text, ok := digString(run, "text"); ok {
			out += text
		}
	}
	return out
}

// lastThumbnail returns the URL of the last entry in the thumbnail array
// located by steps. Upstream orders thumbnails ascending by resolution, so
// the last one is the sharpest available.
func lastThumbnail(root any, steps ...any) (string, bool) {
	thumbs, ok := digList(root, steps...)
	if !ok || len(thumbs) == 0 {
		return "", false
	}

	url, ok := digString(thumbs[len(thumbs)-1], "url")
	if !ok || url == "" {
		return "", false
	}
	return url, true
}
