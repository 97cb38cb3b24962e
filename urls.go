package webguard

import (
	"net/url"
	"strings"
)

// CreateURL creates a *url.URL from the given origin, path, and request
// parameters that has been properly encoded and formatted.
//
// origin must be valid; an invalid origin will panic.
func CreateURL(origin, path string, params map[string]string) *url.URL {
	u, err := url.Parse(origin)
	if err != nil {
		// origins are known at compile time or come from validated config
		panic("webguard: cannot parse url " + origin)
	}

	u.Path = path

	query := make(url.Values, len(params))
	for k, v := range params {
		query.Add(k, v)
	}
	u.RawQuery = query.Encode()
	return u
}

// LoginURL returns the relative location of the login page, remembering
// where the actor was headed in the next parameter.
//
// Only paths accepted by IsLocal are remembered.
func LoginURL(loginPath, next string) string {
	u := &url.URL{Path: loginPath}
	if IsLocal(next) {
		u.RawQuery = url.Values{"next": {next}}.Encode()
	}
	return u.String()
}

// IsLocal reports whether next is a path on this site, suitable as a
// redirect target.
//
// Browsers drop tab and newline bytes from a Location before resolving it,
// so any control byte disqualifies next.
func IsLocal(next string) bool {
	switch {
	case next == "":
		return false
	case next[0] != '/':
		return false
	case len(next) > 1 && (next[1] == '/' || next[1] == '\\'):
		return false
	case strings.IndexFunc(next, isControl) >= 0:
		return false
	}

	u, err := url.Parse(next)
	return err == nil && u.Scheme == "" && u.Host == ""
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}
