package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoenig/test/must"
)

func write(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	must.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_defaults(t *testing.T) {
	path := write(t, "environment: production\n")

	cfg, err := Load(path)
	must.NoError(t, err)
	must.Eq(t, "production", cfg.Environment)
	must.Eq(t, ":8080", cfg.HTTP.Addr)
	must.Eq(t, "lingo-session", cfg.Session.CookieName)
	must.Eq(t, 168*time.Hour, cfg.Session.TTL)
	must.False(t, cfg.Session.Insecure)
	must.Eq(t, "/login", cfg.Session.LoginPath)
	must.Eq(t, "", cfg.Bearer.Secret)
}

func TestLoad_yaml(t *testing.T) {
	path := write(t, `
http:
  addr: ":9090"
session:
  cookie: sid
  ttl: 1h
bearer:
  secret: 0123456789abcdef0123456789abcdef
`)

	cfg, err := Load(path)
	must.NoError(t, err)
	must.Eq(t, ":9090", cfg.HTTP.Addr)
	must.Eq(t, "sid", cfg.Session.CookieName)
	must.Eq(t, time.Hour, cfg.Session.TTL)
	must.Eq(t, "0123456789abcdef0123456789abcdef", cfg.Bearer.Secret)
}

func TestLoad_env(t *testing.T) {
	t.Setenv("WEBGUARD_HTTP_ADDR", ":7070")

	cfg, err := Load("")
	must.NoError(t, err)
	must.Eq(t, ":7070", cfg.HTTP.Addr)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	must.ErrorContains(t, err, "could not read config")
}

func TestLoad_shortSecret(t *testing.T) {
	path := write(t, "bearer:\n  secret: short\n")

	_, err := Load(path)
	must.ErrorContains(t, err, "bearer secret")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := new(Config)
		c.Session.CookieName = "sid"
		c.Session.TTL = time.Hour
		c.Session.LoginPath = "/login"
		return c
	}

	must.NoError(t, valid().Validate())

	noName := valid()
	noName.Session.CookieName = ""
	must.Error(t, noName.Validate())

	noTTL := valid()
	noTTL.Session.TTL = 0
	must.Error(t, noTTL.Validate())

	relative := valid()
	relative.Session.LoginPath = "login"
	must.Error(t, relative.Validate())
}
