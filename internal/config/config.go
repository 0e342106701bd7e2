// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Defaults applied by MergeWithDefaults when a value is unset.
const (
	DefaultDriver             = "chromedp"
	DefaultBrowserTimeout     = 60 * time.Second
	DefaultIframeRecheckDelay = 2 * time.Second
	DefaultPort               = 8080
)

// Drivers lists the supported live browser drivers.
var Drivers = []string{"chromedp", "rod"}

// Duration is a time.Duration that reads from JSON as "2s" style text or as
// a number of milliseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", text, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\" or milliseconds: %w", err)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Profile source
	ProfilePath string `json:"profile_path,omitempty"` // JSON or YAML profile file
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ProfileID   string `json:"profile_id,omitempty"`   // Profile UUID in the database store

	// Browser
	Driver             string   `json:"driver,omitempty"` // chromedp or rod
	BrowserTimeout     Duration `json:"browser_timeout,omitempty"`
	IframeRecheckDelay Duration `json:"iframe_recheck_delay,omitempty"`
	Headful            bool     `json:"headful,omitempty"` // Show the browser window

	// Behavior
	Verbose bool `json:"verbose,omitempty"`
	Port    int  `json:"port,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset or
// unparsable variables leave the field at its zero value.
func FromEnv() Config {
	cfg := Config{
		ProfilePath: os.Getenv("AUTOFILL_PROFILE"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		ProfileID:   os.Getenv("AUTOFILL_PROFILE_ID"),
		Driver:      os.Getenv("AUTOFILL_DRIVER"),
	}
	if d, err := time.ParseDuration(os.Getenv("AUTOFILL_BROWSER_TIMEOUT")); err == nil {
		cfg.BrowserTimeout = Duration(d)
	}
	if d, err := time.ParseDuration(os.Getenv("AUTOFILL_IFRAME_RECHECK_DELAY")); err == nil {
		cfg.IframeRecheckDelay = Duration(d)
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if v, err := strconv.ParseBool(os.Getenv("AUTOFILL_VERBOSE")); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ProfilePath:        DefaultProfilePath(),
		Driver:             DefaultDriver,
		BrowserTimeout:     Duration(DefaultBrowserTimeout),
		IframeRecheckDelay: Duration(DefaultIframeRecheckDelay),
		Port:               DefaultPort,
	}
}

// DefaultProfilePath is profile.json under the user's config directory, or
// in the working directory when that cannot be determined.
func DefaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "profile.json"
	}
	return filepath.Join(dir, "job-autofill", "profile.json")
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Driver != "" && !validDriver(c.Driver) {
		return fmt.Errorf("config error: unknown driver %q (want one of %v)", c.Driver, Drivers)
	}
	if c.BrowserTimeout < 0 {
		return fmt.Errorf("config error: 'browser_timeout' must be non-negative")
	}
	if c.IframeRecheckDelay < 0 {
		return fmt.Errorf("config error: 'iframe_recheck_delay' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.ProfilePath == "" && c.DatabaseURL == "" {
		return fmt.Errorf("config error: no profile source; set 'profile_path' or 'database_url'")
	}
	if c.ProfileID != "" {
		if _, err := uuid.Parse(c.ProfileID); err != nil {
			return fmt.Errorf("config error: 'profile_id' must be a UUID: %w", err)
		}
	}
	return nil
}

// UsesDatabase reports whether the profile lives in Postgres.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over the environment over the config file.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ProfilePath == "" {
		result.ProfilePath = defaults.ProfilePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ProfileID == "" {
		result.ProfileID = defaults.ProfileID
	}
	if result.Driver == "" {
		result.Driver = defaults.Driver
	}
	if result.BrowserTimeout == 0 {
		result.BrowserTimeout = defaults.BrowserTimeout
	}
	if result.IframeRecheckDelay == 0 {
		result.IframeRecheckDelay = defaults.IframeRecheckDelay
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bools: true anywhere wins
	result.Verbose = result.Verbose || defaults.Verbose
	result.Headful = result.Headful || defaults.Headful

	return result
}

func validDriver(name string) bool {
	for _, d := range Drivers {
		if d == name {
			return true
		}
	}
	return false
}
