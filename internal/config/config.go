// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the server configuration.
type Config struct {
	// Environment is "development" or "production"; it selects the log format.
	Environment string `env:"WEBGUARD_ENVIRONMENT" env-default:"development" yaml:"environment"`

	HTTP struct {
		Addr              string        `env:"WEBGUARD_HTTP_ADDR" env-default:":8080" yaml:"addr"`
		ReadHeaderTimeout time.Duration `env:"WEBGUARD_HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		ReadTimeout       time.Duration `env:"WEBGUARD_HTTP_READ_TIMEOUT" env-default:"30s" yaml:"readTimeout"`
		WriteTimeout      time.Duration `env:"WEBGUARD_HTTP_WRITE_TIMEOUT" env-default:"30s" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `env:"WEBGUARD_HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		ShutdownTimeout   time.Duration `env:"WEBGUARD_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"shutdownTimeout"`
	} `yaml:"http"`

	Session struct {
		CookieName string        `env:"WEBGUARD_SESSION_COOKIE" env-default:"lingo-session" yaml:"cookie"`
		TTL        time.Duration `env:"WEBGUARD_SESSION_TTL" env-default:"168h" yaml:"ttl"`
		CacheSize  int           `env:"WEBGUARD_SESSION_CACHE_SIZE" env-default:"1024" yaml:"cacheSize"`
		LoginPath  string        `env:"WEBGUARD_LOGIN_PATH" env-default:"/login" yaml:"loginPath"`

		// Insecure drops the Secure cookie flag, for local development over http.
		Insecure bool `env:"WEBGUARD_SESSION_INSECURE" yaml:"insecure"`
	} `yaml:"session"`

	Bearer struct {
		// Secret signs API bearer tokens (HS256); bearer auth is off when empty.
		Secret string `env:"WEBGUARD_BEARER_SECRET" yaml:"secret"`
		Issuer string `env:"WEBGUARD_BEARER_ISSUER" env-default:"lingo" yaml:"issuer"`
	} `yaml:"bearer"`
}

// minSecret is the shortest bearer secret accepted for HS256.
const minSecret = 32

// Load reads the YAML file at path, then applies environment overrides. An
// empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read config")
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports configuration that would leave the server insecure or
// unusable.
func (c *Config) Validate() error {
	switch {
	case c.Session.CookieName == "":
		return errors.New("config: session cookie name is required")
	case c.Session.TTL <= 0:
		return errors.Errorf("config: session ttl must be positive, got %s", c.Session.TTL)
	case c.Session.LoginPath == "" || c.Session.LoginPath[0] != '/':
		return errors.Errorf("config: login path must be absolute, got %q", c.Session.LoginPath)
	case c.Bearer.Secret != "" && len(c.Bearer.Secret) < minSecret:
		return errors.Errorf("config: bearer secret must be at least %d bytes", minSecret)
	}
	return nil
}
