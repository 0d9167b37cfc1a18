package innertube

import (
	"crypto/sha1"
	"fmt"

	"github.com/ytmbar/ytmbar/internal/shared"
)

// sessionCookieNames are the cookie names that carry the session identity
// value used for request signing. Either is accepted; SAPISID is preferred.
var sessionCookieNames = []string{"SAPISID", "__Secure-3PAPISID"}

// AuthToken derives the SAPISIDHASH authorization token for a single request.
//
// The token is "{ts}_{hash}" where hash is the lowercase hex SHA-1 of
// "{ts} {cookieValue} {origin}". It is valid only around the timestamp it was
// derived for, so callers recompute it per request and never cache it.
func AuthToken(cookies shared.Cookies, origin string, ts int64) (string, error) {
	var value string
	for _, name := range sessionCookieNames {
		if v, ok := cookies.Get(name); ok && v != "" {
			value = v
			break
		}
	}

	if value == "" {
		return "", fmt.Errorf("%w: expected SAPISID or __Secure-3PAPISID", shared.ErrAuthRequired)
	}

	sum := sha1.Sum(fmt.Appendf(nil, "%d %s %s", ts, value, origin))
	return fmt.Sprintf("%d_%x", ts, sum), nil
}
