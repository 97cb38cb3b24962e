package routes

import (
	"testing"

	"github.com/shoenig/test/must"
)

func TestIsPrivileged(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		exp  bool
	}{
		{Home, false},
		{Login, false},
		{Lessons, false},
		{Health, false},
		{Progress, true},
		{Progress + "/", true},
		{Settings, true},
		{PasswordReset, true},
		{PasswordConfirm, true},
		{"/progressive", false},
	}

	for _, tc := range cases {
		must.Eq(t, tc.exp, IsPrivileged(tc.path), must.Sprintf("path %q", tc.path))
	}
}

func TestVisible(t *testing.T) {
	t.Parallel()

	must.Eq(t, Navigation, Visible(true))
	must.Eq(t, []Link{
		{Title: "Home", Path: Home},
		{Title: "Lessons", Path: Lessons},
	}, Visible(false))
}

func TestIsAPI(t *testing.T) {
	t.Parallel()

	must.True(t, IsAPI(Health))
	must.False(t, IsAPI(Lessons))
}
