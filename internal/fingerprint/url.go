package fingerprint

import (
	"fmt"
	"net/url"
	"strings"
)

// canonicalizeURL standardizes a URL to avoid duplicate fingerprints. It
// lowercases the scheme and host, removes default ports, and sorts query
// parameters. The fragment is kept only when requested: browser-rendered
// outputs can depend on it.
func canonicalizeURL(rawURL string, keepFragment bool) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	if !keepFragment {
		u.Fragment = ""
	}

	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}
