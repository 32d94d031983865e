package ragscrape

import (
	"net/url"
	"strings"
)

// CanonicalURL reduces a URL to scheme, host and path. Query strings and
// fragments are dropped, the scheme and host are lowercased and an empty
// path becomes "/". Only http and https URLs are accepted.
func CanonicalURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + strings.ToLower(u.Host) + path, nil
}

// URLHost returns the lowercased host (including port) of a URL,
// or an empty string if the URL cannot be parsed.
func URLHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
