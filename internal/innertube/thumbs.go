package innertube

import "regexp"

// Artwork URLs carry a size token near the end. Two families are recognized:
// fixed "w{N}-h{N}" pairs and scale tokens "=s{N}" with an optional crop or
// pad qualifier. Both are rewritten to the 544px variant the upstream web
// player requests for full-size artwork.
var (
	fixedSizeToken = regexp.MustCompile(`w\d+-h\d+`)
	scaleToken     = regexp.MustCompile(`=s\d+(-[cp])?`)
)

const (
	hiResPair  = "w544-h544"
	hiResScale = "=s544"
)

// UpgradeArtwork rewrites a low-resolution artwork URL to its high-resolution
// equivalent. URLs without a recognized size token pass through unchanged;
// the rewrite is idempotent.
func UpgradeArtwork(url string) string {
	if fixedSizeToken.MatchString(url) {
		return fixedSizeToken.ReplaceAllString(url, hiResPair)
	}
	if scaleToken.MatchString(url) {
		return scaleToken.ReplaceAllString(url, hiResScale)
	}
	return url
}
