// Package config handles TOML-based configuration loading and validation.
// Values are merged as: defaults < config file < environment < CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Resolver names accepted in the config file.
const (
	ResolverYtDlp     = "ytdlp"
	ResolverOpenGraph = "opengraph"
)

// Config holds all application configuration.
type Config struct {
	Listen          string `toml:"listen"`
	APIKey          string `toml:"api_key"`
	Resolver        string `toml:"resolver"`
	YtDlpPath       string `toml:"ytdlp_path"`
	CookiesFile     string `toml:"cookies_file"`
	ResolveTimeout  string `toml:"resolve_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	LogLevel        string `toml:"log_level"`
	LogJSON         bool   `toml:"log_json"`
	Debug           bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Listen:          ":8000",
		APIKey:          "",
		Resolver:        ResolverYtDlp,
		YtDlpPath:       "yt-dlp",
		ResolveTimeout:  "60s",
		ShutdownTimeout: "10s",
		LogLevel:        "info",
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vidurl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vidurl"), nil
}

// ConfigPath returns the path to the default config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the default config file, applies environment overrides and
// validates the result. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		path = ""
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.Resolver = strings.ToLower(cfg.Resolver)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides file values with environment variables.
// API_KEY keeps its historical unprefixed name.
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"API_KEY":           &c.APIKey,
		"VIDURL_LISTEN":     &c.Listen,
		"VIDURL_RESOLVER":   &c.Resolver,
		"VIDURL_YTDLP_PATH": &c.YtDlpPath,
	}
	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validResolvers := map[string]bool{
		ResolverYtDlp: true, ResolverOpenGraph: true,
	}
	if !validResolvers[strings.ToLower(c.Resolver)] {
		return fmt.Errorf("unsupported resolver %q (valid: ytdlp, opengraph)", c.Resolver)
	}

	validLevels := map[string]bool{
		"panic": true, "fatal": true, "error": true, "warn": true,
		"warning": true, "info": true, "debug": true, "trace": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	if strings.EqualFold(c.Resolver, ResolverYtDlp) && c.YtDlpPath == "" {
		return fmt.Errorf("ytdlp_path cannot be empty")
	}

	for name, raw := range map[string]string{
		"resolve_timeout":  c.ResolveTimeout,
		"shutdown_timeout": c.ShutdownTimeout,
	} {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, raw)
		}
	}

	return nil
}

// AuthEnabled reports whether /extract requires a credential.
func (c *Config) AuthEnabled() bool {
	return c.APIKey != ""
}

// ResolveDeadline returns the parsed resolve_timeout.
func (c *Config) ResolveDeadline() time.Duration {
	return mustDuration(c.ResolveTimeout)
}

// ShutdownDeadline returns the parsed shutdown_timeout.
func (c *Config) ShutdownDeadline() time.Duration {
	return mustDuration(c.ShutdownTimeout)
}

// mustDuration parses a duration already checked by Validate.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(fmt.Sprintf("config: unvalidated duration %q", s))
	}
	return d
}
