package webguard

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/mileusna/useragent"
)

// Origin contains request origination context from parsing request headers.
type Origin struct {
	Method    string
	Host      string
	Forward   string
	Reference string
	UserAgent useragent.UserAgent
}

// From returns a parsed version of the Referer header, including the domain
// and path without the protocol or query.
func (o *Origin) From() string {
	if o.Reference == "" {
		return "-"
	}

	u, err := url.Parse(o.Reference)
	if err != nil {
		return "-"
	}
	return u.Host + u.Path
}

// String returns the parsed user agent, including only the name and type of
// device being used (or bot).
func (o *Origin) String() string {
	var mode string
	switch {
	case o.UserAgent.Bot:
		mode = "bot"
	case o.UserAgent.Mobile:
		mode = "phone"
	case o.UserAgent.Tablet:
		mode = "tablet"
	case o.UserAgent.Desktop:
		mode = "desktop"
	default:
		mode = "unknown"
	}
	return o.UserAgent.Name + "/" + mode
}

// Client returns the address of the originating client, preferring the first
// X-Forwarded-For entry over the connection address.
func (o *Origin) Client(r *http.Request) string {
	if o.Forward != "" {
		first, _, _ := strings.Cut(o.Forward, ",")
		return strings.TrimSpace(first)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Origins parses the request headers to get information about the origins of
// the request, including ...
//
// - Host
// - X-Forwarded-For
// - Referer
// - User-Agent
func Origins(r *http.Request) *Origin {
	return &Origin{
		Method:    strings.ToUpper(r.Method),
		Host:      r.Host,
		Forward:   r.Header.Get("X-Forwarded-For"),
		Reference: r.Header.Get("Referer"),
		UserAgent: useragent.Parse(r.Header.Get("User-Agent")),
	}
}
