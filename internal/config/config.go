package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings.
type Config struct {
	Addr         string `yaml:"addr"`
	AllowOrigins string `yaml:"allow_origins"`
	ClockSeconds int    `yaml:"clock_seconds"`
	ArchiveDSN   string `yaml:"archive_dsn"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		ClockSeconds: 600,
	}
}

// Load reads a YAML file over the defaults, so a partial file only
// overrides the keys it names. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		return Config{}, fmt.Errorf("config %s: addr must not be empty", path)
	}
	if cfg.ClockSeconds <= 0 {
		return Config{}, fmt.Errorf("config %s: clock_seconds must be positive", path)
	}
	return cfg, nil
}
