package webguard

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// MIMEType are correct identifier strings for various MIME types.
//
// Consider using one of the pre-defined types.
type MIMEType string

const (
	ContentTypeText MIMEType = "text/plain; charset=utf-8"
	ContentTypeHTML MIMEType = "text/html; charset=utf-8"
	ContentTypeJSON MIMEType = "application/json; charset=utf-8"
)

// SetContentType sets the Content-Type header on w, replacing any value
// already present.
func SetContentType(w http.ResponseWriter, filetype MIMEType) {
	w.Header().Set("Content-Type", string(filetype))
}

// RobotIndex are sentinel values for the X-Robots-Tag response header.
type RobotIndex string

const (
	RobotsNoIndex  RobotIndex = "noindex"
	RobotsYesIndex RobotIndex = "all"
)

// SetRobotsTag to a crawl control value (e.g. noindex). Account pages should
// never be indexed.
func SetRobotsTag(w http.ResponseWriter, instruction RobotIndex) {
	w.Header().Set("X-Robots-Tag", string(instruction))
}

// SetCacheControl sets a private Cache-Control header on w with the given
// duration, rounded down to seconds.
func SetCacheControl(w http.ResponseWriter, ttl time.Duration) {
	seconds := int(ttl.Seconds())
	w.Header().Set("Cache-Control", "private, max-age="+strconv.Itoa(seconds))
}

// SetNoStore forbids caching of the response anywhere; used for anything
// that depends on who the actor is.
func SetNoStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

// SetBasicAuth sets the Authorization header on r, using the given username
// and password.
//
// NOTE: if either username or password is empty, no header is set.
func SetBasicAuth(r *http.Request, username, password string) {
	if username == "" || password == "" {
		return
	}

	credential := username + ":" + password
	enc := base64.StdEncoding.EncodeToString([]byte(credential))
	r.Header.Set("Authorization", "Basic "+enc)
}

// WantsHTML reports whether the client prefers an HTML page over a JSON
// body, going by the Accept header.
func WantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
