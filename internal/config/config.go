// Package config loads callguard configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sprite-ai/callguard/internal/decoy"
	"github.com/sprite-ai/callguard/internal/session"
	"github.com/sprite-ai/callguard/internal/signal"
)

// Defaults.
const (
	DefaultAddr      = "127.0.0.1:6142"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds callguard configuration.
type Config struct {
	Server    ServerConfig      `yaml:"server"`
	Logging   LoggingConfig     `yaml:"logging"`
	Catalog   CatalogConfig     `yaml:"catalog"`
	Case      CaseConfig        `yaml:"case"`
	Directory []session.Contact `yaml:"directory"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

type CatalogConfig struct {
	Path string `yaml:"path"` // optional YAML signal catalog
}

type CaseConfig struct {
	Prefix     string `yaml:"prefix"`      // decoy case id prefix
	CanaryHost string `yaml:"canary_host"` // decoy canary link host
}

// Load reads configuration from a YAML file, then applies environment
// overrides. A missing file (or an empty path) yields the defaults.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: DefaultAddr},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Case: CaseConfig{
			Prefix:     decoy.DefaultPrefix,
			CanaryHost: decoy.DefaultHost,
		},
		Directory: append([]session.Contact(nil), session.DefaultDirectory...),
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("CALLGUARD_ADDR", cfg.Server.Addr)
	cfg.Logging.Level = getEnv("CALLGUARD_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("CALLGUARD_LOG_FORMAT", cfg.Logging.Format)
	cfg.Catalog.Path = getEnv("CALLGUARD_CATALOG", cfg.Catalog.Path)
	cfg.Case.Prefix = getEnv("CALLGUARD_CASE_PREFIX", cfg.Case.Prefix)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Case.CanaryHost == "" {
		cfg.Case.CanaryHost = decoy.DefaultHost
	}
	if len(cfg.Directory) == 0 {
		cfg.Directory = append([]session.Contact(nil), session.DefaultDirectory...)
	}
}

// Validate checks the loaded config for usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	if strings.TrimSpace(c.Case.Prefix) == "" {
		return errors.New("case.prefix must be set")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}
	for i, ct := range c.Directory {
		if ct.Name == "" || ct.Number == "" {
			return fmt.Errorf("directory[%d] needs a name and a number", i)
		}
	}
	return nil
}

// LoadCatalog returns the configured signal catalog, or the built-in one.
func (c *Config) LoadCatalog() (*signal.Catalog, error) {
	if c.Catalog.Path == "" {
		return signal.Default(), nil
	}
	return signal.Load(c.Catalog.Path)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
