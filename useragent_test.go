package webguard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mileusna/useragent"
	"github.com/shoenig/test/must"
)

func TestOrigin_From(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		reference string
		exp       string
	}{
		{"Empty reference", "", "-"},
		{"Standard URL", "https://example.com/path/to/page", "example.com/path/to/page"},
		{"URL with query", "http://google.com/search?q=golang", "google.com/search"},
		{"URL with fragment", "https://example.com/lessons/3#vocab", "example.com/lessons/3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &Origin{Reference: tc.reference}
			must.Eq(t, tc.exp, o.From())
		})
	}
}

func TestOrigin_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		userAgent useragent.UserAgent
		want      string
	}{
		{"Bot", useragent.UserAgent{Name: "Googlebot", Bot: true}, "Googlebot/bot"},
		{"Mobile", useragent.UserAgent{Name: "Safari", Mobile: true}, "Safari/phone"},
		{"Tablet", useragent.UserAgent{Name: "Chrome", Tablet: true}, "Chrome/tablet"},
		{"Desktop", useragent.UserAgent{Name: "Firefox", Desktop: true}, "Firefox/desktop"},
		{"Unknown", useragent.UserAgent{Name: "MyBrowser"}, "MyBrowser/unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := &Origin{UserAgent: tc.userAgent}
			must.Eq(t, tc.want, o.String())
		})
	}
}

func TestOrigins(t *testing.T) {
	t.Parallel()

	agent := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"
	r := httptest.NewRequest(http.MethodPost, "https://example.org/v1/data", nil)
	r.Header.Set("X-Forwarded-For", "10.1.1.1")
	r.Header.Set("Referer", "https://dashboard.example.org/home")
	r.Header.Set("User-Agent", agent)

	origin := Origins(r)

	must.Eq(t, "POST", origin.Method)
	must.Eq(t, "example.org", origin.Host)
	must.Eq(t, "10.1.1.1", origin.Forward)
	must.Eq(t, "https://dashboard.example.org/home", origin.Reference)
	must.Eq(t, "Chrome", origin.UserAgent.Name)
}

func TestOrigin_Client(t *testing.T) {
	t.Parallel()

	t.Run("forwarded", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "10.1.1.1, 192.168.0.2")
		must.Eq(t, "10.1.1.1", Origins(r).Client(r))
	})

	t.Run("remote addr", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "172.16.0.9:51234"
		must.Eq(t, "172.16.0.9", Origins(r).Client(r))
	})
}
