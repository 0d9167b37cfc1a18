// Package innertube is a client for the private YouTube Music web API.
//
// The API is unofficial and undocumented: requests are signed with a
// SAPISIDHASH token derived from browser session cookies, and responses are
// deeply nested renderer trees whose exact nesting varies by call and by
// account state. The extractor side of this package therefore resolves an
// ordered list of candidate paths per call and degrades to partial (possibly
// empty) results instead of failing when the upstream shape drifts.
package innertube
