// Utilities for importing browser session cookies.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// defaultCookieDomain is assumed for cookies captured from a music.youtube.com tab.
const defaultCookieDomain = ".youtube.com"

// Cookie is a single browser cookie as a name/value/domain tuple.
type Cookie struct {
	Name   string
	Value  string
	Domain string
}

// Cookies is a parsed browser cookie set.
type Cookies []Cookie

// Get returns the value of the named cookie and whether it was present.
func (c Cookies) Get(name string) (string, bool) {
	for _, cookie := range c {
		if cookie.Name == name {
			return cookie.Value, true
		}
	}
	return "", false
}

// Header renders the set as a Cookie request header value.
func (c Cookies) Header() string {
	pairs := make([]string, 0, len(c))
	for _, cookie := range c {
		pairs = append(pairs, fmt.Sprintf("%s=%s", cookie.Name, cookie.Value))
	}
	return strings.Join(pairs, "; ")
}

// ParseCookieFile reads a file holding either a browser "Copy as cURL" command
// or a raw Cookie header line and extracts the cookie set.
func ParseCookieFile(path string) (Cookies, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "curl ") || strings.HasPrefix(trimmed, "curl\t") {
		return ParseCurlCommand(content)
	}

	cookies := parseCookieHeader(trimmed)
	if len(cookies) == 0 {
		return nil, fmt.Errorf("no cookies found in %s", path)
	}
	return cookies, nil
}

var (
	curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
)

// ParseCurlCommand parses a cURL command string and extracts its cookie set.
//
// Cookies may appear either as a -b flag or a "Cookie:" header; the -b flag
// takes precedence.
func ParseCurlCommand(data []byte) (Cookies, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	var raw string

	if m := curlCookieRegex.FindStringSubmatch(curlCmd); len(m) > 1 {
		if m[1] != "" {
			raw = m[1]
		} else {
			raw = m[2]
		}
	}

	if raw == "" {
		for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
			headerLine := match[1]
			if headerLine == "" {
				headerLine = match[2]
			}

			if strings.HasPrefix(strings.ToLower(headerLine), "cookie:") {
				parts := strings.SplitN(headerLine, ":", 2)
				if len(parts) == 2 {
					raw = strings.TrimSpace(parts[1])
				}
				break
			}
		}
	}

	cookies := parseCookieHeader(raw)
	if len(cookies) == 0 {
		return nil, fmt.Errorf("no cookies found in curl command")
	}

	return cookies, nil
}

// parseCookieHeader splits a Cookie header value ("a=1; b=2") into a cookie set.
func parseCookieHeader(raw string) Cookies {
	var cookies Cookies

	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			continue
		}

		cookies = append(cookies, Cookie{
			Name:   strings.TrimSpace(parts[0]),
			Value:  parts[1],
			Domain: defaultCookieDomain,
		})
	}

	return cookies
}
