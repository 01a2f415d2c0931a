// Package config provides configuration management for frame operations
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config represents the global configuration for frame operations
type Config struct {
	// Construction
	LazyValidation bool `json:"lazy_validation" yaml:"lazy_validation"` // Defer invariant checks to first use

	// Display
	DisplayRows int `json:"display_rows" yaml:"display_rows"` // Rows printed from each end by String

	// Combination
	RenameFormat string `json:"rename_format" yaml:"rename_format"` // fmt pattern for renamed duplicate columns, receives name and ordinal
	DefaultJoin  string `json:"default_join" yaml:"default_join"`   // Join used by Merge when none is given

	// Logging
	LogLevel    string `json:"log_level" yaml:"log_level"`       // debug, info, warn or error
	LogEncoding string `json:"log_encoding" yaml:"log_encoding"` // console or json
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultDisplayRows  = 3
	DefaultRenameFormat = "%s (%d)"
	DefaultJoin         = "left"
	DefaultLogLevel     = "warn"
	DefaultLogEncoding  = "console"
)

var (
	validJoins     = []string{"inner", "left", "right", "outer"}
	validLevels    = []string{"debug", "info", "warn", "error"}
	validEncodings = []string{"console", "json"}
)

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		LazyValidation: false,
		DisplayRows:    DefaultDisplayRows,
		RenameFormat:   DefaultRenameFormat,
		DefaultJoin:    DefaultJoin,
		LogLevel:       DefaultLogLevel,
		LogEncoding:    DefaultLogEncoding,
	}
}

// CheckRenameFormat renders the pattern with a sample name and two ordinals.
// Both arguments must be consumed by matching verbs and the ordinal must
// change the output.
func CheckRenameFormat(format string) error {
	second := fmt.Sprintf(format, "x", 2)
	if strings.Contains(second, "%!") || second == fmt.Sprintf(format, "x", 3) {
		return fmt.Errorf("RenameFormat must format a name (string) then an ordinal (int), got %q", format)
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.DisplayRows <= 0 {
		return fmt.Errorf("DisplayRows must be positive, got %d", c.DisplayRows)
	}

	if err := CheckRenameFormat(c.RenameFormat); err != nil {
		return err
	}

	if !oneOf(c.DefaultJoin, validJoins) {
		return fmt.Errorf("DefaultJoin must be one of %v, got %q", validJoins, c.DefaultJoin)
	}

	if !oneOf(c.LogLevel, validLevels) {
		return fmt.Errorf("LogLevel must be one of %v, got %q", validLevels, c.LogLevel)
	}

	if !oneOf(c.LogEncoding, validEncodings) {
		return fmt.Errorf("LogEncoding must be one of %v, got %q", validEncodings, c.LogEncoding)
	}

	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.DisplayRows == 0 {
		c.DisplayRows = defaults.DisplayRows
	}
	if c.RenameFormat == "" {
		c.RenameFormat = defaults.RenameFormat
	}
	if c.DefaultJoin == "" {
		c.DefaultJoin = defaults.DefaultJoin
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogEncoding == "" {
		c.LogEncoding = defaults.LogEncoding
	}

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("BIOCFRAME_LAZY_VALIDATION"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.LazyValidation = parsed
		}
	}

	if val := os.Getenv("BIOCFRAME_DISPLAY_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.DisplayRows = parsed
		}
	}

	if val := os.Getenv("BIOCFRAME_RENAME_FORMAT"); val != "" {
		config.RenameFormat = val
	}

	if val := os.Getenv("BIOCFRAME_DEFAULT_JOIN"); val != "" {
		config.DefaultJoin = strings.ToLower(val)
	}

	if val := os.Getenv("BIOCFRAME_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	if val := os.Getenv("BIOCFRAME_LOG_ENCODING"); val != "" {
		config.LogEncoding = strings.ToLower(val)
	}

	return config
}
