package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/flightdeck/internal/booking"
)

// Config holds CLI configuration stored at ~/.flightdeck/config.
type Config struct {
	NarrowWidth     int    `yaml:"narrow_width,omitempty" mapstructure:"narrow_width"`
	VimKeys         bool   `yaml:"vim_keys,omitempty" mapstructure:"vim_keys"`
	DefaultTripType string `yaml:"default_trip_type,omitempty" mapstructure:"default_trip_type"`
	ExportDir       string `yaml:"export_dir,omitempty" mapstructure:"export_dir"`
}

// Keys lists the settable config keys in display order.
var Keys = []string{"narrow_width", "vim_keys", "default_trip_type", "export_dir"}

const (
	envPrefix          = "FLIGHTDECK"
	defaultNarrowWidth = 80
)

// Dir returns the flightdeck state directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".flightdeck")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		NarrowWidth:     defaultNarrowWidth,
		VimKeys:         false,
		DefaultTripType: "roundTrip",
		ExportDir:       filepath.Join(Dir(), "exports"),
	}
}

// Load reads the config file, applies FLIGHTDECK_* environment overrides and
// fills defaults. A missing file is not an error; an insecure one is.
func Load() (*Config, error) {
	path := Path()
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("narrow_width", def.NarrowWidth)
	v.SetDefault("vim_keys", def.VimKeys)
	v.SetDefault("default_trip_type", def.DefaultTripType)
	v.SetDefault("export_dir", def.ExportDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	exists, err := checkFile(path)
	if err != nil {
		return nil, err
	}
	if exists {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile returns only the values written in the config file, with no
// defaults and no environment overrides. Edits go through it so Save never
// persists a FLIGHTDECK_* value or a derived default.
func LoadFile() (*Config, error) {
	path := Path()
	var cfg Config
	exists, err := checkFile(path)
	if err != nil || !exists {
		return &cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// checkFile reports whether the config file exists and rejects loose permissions.
func checkFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if perm := info.Mode().Perm(); perm != 0600 {
			return false, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
		}
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat config: %w", err)
	}
}

// Validate rejects values the TUI cannot work with.
func (c *Config) Validate() error {
	if c.NarrowWidth <= 0 {
		return fmt.Errorf("config narrow_width must be positive, got %d", c.NarrowWidth)
	}
	return nil
}

// Set assigns a single key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "narrow_width":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("narrow_width must be a positive integer")
		}
		c.NarrowWidth = n
	case "vim_keys":
		switch strings.ToLower(value) {
		case "true", "yes", "on", "1":
			c.VimKeys = true
		case "false", "no", "off", "0":
			c.VimKeys = false
		default:
			return fmt.Errorf("vim_keys must be true or false")
		}
	case "default_trip_type":
		t, err := booking.ParseTripType(value)
		if err != nil {
			return err
		}
		c.DefaultTripType = t.String()
	case "export_dir":
		c.ExportDir = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Get returns a key's value in string form.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "narrow_width":
		return fmt.Sprintf("%d", c.NarrowWidth), nil
	case "vim_keys":
		return fmt.Sprintf("%t", c.VimKeys), nil
	case "default_trip_type":
		return c.DefaultTripType, nil
	case "export_dir":
		return c.ExportDir, nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
