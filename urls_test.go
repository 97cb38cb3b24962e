package webguard

import (
	"testing"

	"github.com/shoenig/test/must"
)

func TestCreateURL(t *testing.T) {
	t.Parallel()

	orig := "http://example.org:8000"
	params := map[string]string{
		"key":    "abc123",
		"offset": "3",
	}

	u := CreateURL(orig, "/hello", params)
	must.Eq(t, "http://example.org:8000/hello?key=abc123&offset=3", u.String())
}

func TestLoginURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		next string
		exp  string
	}{
		{"no next", "", "/login"},
		{"local path", "/progress", "/login?next=%2Fprogress"},
		{"local with query", "/lessons?unit=2", "/login?next=%2Flessons%3Funit%3D2"},
		{"absolute url", "https://evil.example/", "/login"},
		{"scheme relative", "//evil.example/", "/login"},
		{"backslash", "/\\evil.example", "/login"},
		{"tab", "/\t/evil.example", "/login"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			must.Eq(t, tc.exp, LoginURL("/login", tc.next))
		})
	}
}

func TestIsLocal(t *testing.T) {
	t.Parallel()

	must.True(t, IsLocal("/"))
	must.True(t, IsLocal("/lessons/3"))
	must.False(t, IsLocal(""))
	must.False(t, IsLocal("lessons"))
	must.False(t, IsLocal("//evil.example"))
	must.False(t, IsLocal("https://evil.example"))
	must.False(t, IsLocal("/\\evil.example"))
	must.False(t, IsLocal("/\t/evil.example"))
	must.False(t, IsLocal("/\n/evil.example"))
	must.False(t, IsLocal("/\r/evil.example"))
	must.False(t, IsLocal("/lessons\x7f"))
}
