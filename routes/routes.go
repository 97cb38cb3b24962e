// Package routes is the navigation table of the web client.
package routes

import (
	"strings"

	"github.com/hashicorp/go-set/v3"
)

const (
	Home            = "/"
	Login           = "/login"
	Logout          = "/logout"
	Lessons         = "/lessons"
	Progress        = "/progress"
	Settings        = "/settings"
	PasswordReset   = "/password/reset"
	PasswordConfirm = "/password/reset/confirm"
	Health          = "/api/health"
	APIPrefix       = "/api/"
)

// Link is an entry in the navigation menu.
type Link struct {
	Title string
	Path  string
}

// Navigation lists the menu shown to every visitor, in display order.
var Navigation = []Link{
	{Title: "Home", Path: Home},
	{Title: "Lessons", Path: Lessons},
	{Title: "Progress", Path: Progress},
	{Title: "Settings", Path: Settings},
}

var privileged = set.From([]string{
	Progress,
	Settings,
	PasswordReset,
	PasswordConfirm,
})

// IsPrivileged reports whether path may only be visited by an authenticated
// actor. Trailing slashes are ignored.
func IsPrivileged(path string) bool {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return privileged.Contains(path)
}

// Visible returns the navigation links for a visitor; anonymous visitors are
// not shown privileged destinations.
func Visible(authenticated bool) []Link {
	links := make([]Link, 0, len(Navigation))
	for _, link := range Navigation {
		if !authenticated && IsPrivileged(link.Path) {
			continue
		}
		links = append(links, link)
	}
	return links
}

// IsAPI reports whether path belongs to the JSON API.
func IsAPI(path string) bool {
	return strings.HasPrefix(path, APIPrefix)
}
