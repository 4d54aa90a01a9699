// Package config loads panefm configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (PANEFM_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .panefm.yaml in current directory
//  2. ~/.config/panefm/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timvw/panefm/internal/journal"
	"github.com/timvw/panefm/internal/logging"
	"github.com/timvw/panefm/internal/transfer"
)

// JournalOff disables the journal file when used as the journal path.
const JournalOff = "off"

// Config holds all panefm configuration.
type Config struct {
	// Display
	Theme   string `yaml:"theme"`   // "dark" (default) or "light"
	Reverse bool   `yaml:"reverse"` // initial reversal flag
	Panes   int    `yaml:"panes"`   // initial pane count

	// Transfers
	Overwrite string `yaml:"overwrite"` // "replace" (default) or "refuse"

	// Journal
	Journal     string `yaml:"journal"`      // JSONL path; "off" disables
	JournalSize int    `yaml:"journal_size"` // records kept in memory

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs, e.g. "Authorization=Basic abc123"

	// Keys overrides default bindings: action name -> key strings.
	Keys map[string][]string `yaml:"keys"`

	// Parsed values (not from YAML, set after loading)
	Policy transfer.Policy `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Theme:       "dark",
		Panes:       2,
		Overwrite:   "replace",
		JournalSize: 100,
		LogLevel:    "info",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	if err := mergeEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// JournalPath returns the journal file path, or "" when disabled.
func (c *Config) JournalPath() string {
	switch c.Journal {
	case JournalOff:
		return ""
	case "":
		return journal.DefaultPath()
	default:
		return c.Journal
	}
}

func (c *Config) validate() error {
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("invalid theme %q (supported: dark, light)", c.Theme)
	}
	if c.Panes < 1 {
		return fmt.Errorf("invalid pane count %d: need at least 1", c.Panes)
	}
	if c.JournalSize < 1 {
		return fmt.Errorf("invalid journal size %d: need at least 1", c.JournalSize)
	}
	policy, err := transfer.ParsePolicy(c.Overwrite)
	if err != nil {
		return err
	}
	c.Policy = policy
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".panefm.yaml"); err == nil {
		return ".panefm.yaml", data, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "panefm", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}
	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.Reverse {
		cfg.Reverse = file.Reverse
	}
	if file.Panes != 0 {
		cfg.Panes = file.Panes
	}
	if file.Overwrite != "" {
		cfg.Overwrite = file.Overwrite
	}
	if file.Journal != "" {
		cfg.Journal = file.Journal
	}
	if file.JournalSize != 0 {
		cfg.JournalSize = file.JournalSize
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
	if len(file.Keys) > 0 {
		cfg.Keys = file.Keys
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) error {
	if v := os.Getenv("PANEFM_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("PANEFM_REVERSE"); v == "true" || v == "1" {
		cfg.Reverse = true
	}
	if v := os.Getenv("PANEFM_PANES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PANEFM_PANES %q: %w", v, err)
		}
		cfg.Panes = n
	}
	if v := os.Getenv("PANEFM_OVERWRITE"); v != "" {
		cfg.Overwrite = strings.ToLower(v)
	}
	if v := os.Getenv("PANEFM_JOURNAL"); v != "" {
		cfg.Journal = v
	}
	if v := os.Getenv("PANEFM_JOURNAL_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PANEFM_JOURNAL_SIZE %q: %w", v, err)
		}
		cfg.JournalSize = n
	}
	if v := os.Getenv("PANEFM_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("PANEFM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
	return nil
}
