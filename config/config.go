package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/milk9111/tiledmap/maps"
	"gopkg.in/yaml.v3"
)

// Config configures how maps are loaded.
type Config struct {
	// Policy is "lenient" or "strict".
	Policy        string        `yaml:"policy"`
	Workers       int           `yaml:"workers"`
	Quiet         bool          `yaml:"quiet"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

func Default() Config {
	return Config{
		Policy:        maps.Lenient.String(),
		Workers:       1,
		WatchDebounce: 100 * time.Millisecond,
	}
}

// Load reads a YAML config file. Missing keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	return nil
}

// ParsePolicy maps a policy name to a maps.Policy. An empty name is lenient.
func ParsePolicy(name string) (maps.Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lenient":
		return maps.Lenient, nil
	case "strict":
		return maps.Strict, nil
	}
	return maps.Lenient, fmt.Errorf("unknown policy %q", name)
}

// Apply copies the configuration onto l.
func (c Config) Apply(l *maps.Loader) error {
	policy, err := ParsePolicy(c.Policy)
	if err != nil {
		return err
	}
	l.Policy = policy
	l.Workers = c.Workers
	if c.Quiet {
		l.Logger = log.New(io.Discard, "", 0)
	}
	return nil
}
