// Package config provides configuration loading and management for semonto.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semonto/vocabulary/relation"
)

// Output formats.
const (
	FormatOBO      = "obo"
	FormatJSON     = "json"
	FormatTurtle   = "turtle"
	FormatNTriples = "ntriples"
)

// Output profiles.
const (
	ProfileCanonical = "canonical"
	ProfileFull      = "full"
)

// Config represents the complete semonto configuration
type Config struct {
	Load      LoadConfig       `yaml:"load"`
	Output    OutputConfig     `yaml:"output"`
	Log       LogConfig        `yaml:"log"`
	Relations []RelationConfig `yaml:"relations,omitempty"`
}

// LoadConfig configures retrieval and import resolution
type LoadConfig struct {
	// Imports enables transitive import resolution (default: true)
	Imports *bool `yaml:"imports,omitempty"`
	// SkipUnsupportedImports drops imports in formats without a parser,
	// such as OWL, instead of failing the load (default: true)
	SkipUnsupportedImports *bool `yaml:"skip_unsupported_imports,omitempty"`
	// MaxConcurrentImports bounds parallel import fetches (default: 16)
	MaxConcurrentImports int `yaml:"max_concurrent_imports"`
	// Timeout bounds each remote transfer (default: 60s)
	Timeout time.Duration `yaml:"timeout"`
	// MaxContentSize limits a single document in bytes (default: 1 GiB)
	MaxContentSize int64 `yaml:"max_content_size"`
	// UserAgent is sent with HTTP requests
	UserAgent string `yaml:"user_agent"`
	// FTPUser and FTPPassword are used for ftp:// locations (default: anonymous)
	FTPUser     string `yaml:"ftp_user"`
	FTPPassword string `yaml:"ftp_password"`
}

// ImportsEnabled reports whether imports are resolved.
func (l LoadConfig) ImportsEnabled() bool {
	return l.Imports == nil || *l.Imports
}

// SkipUnsupported reports whether unsupported imports are dropped.
func (l LoadConfig) SkipUnsupported() bool {
	return l.SkipUnsupportedImports == nil || *l.SkipUnsupportedImports
}

// OutputConfig configures serialization
type OutputConfig struct {
	// Format is one of obo, json, turtle, ntriples (default: obo)
	Format string `yaml:"format"`
	// Profile is canonical (canonical relations only) or full (default: canonical)
	Profile string `yaml:"profile"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `yaml:"level"`
}

// RelationConfig declares a relation kind added to the default table
type RelationConfig struct {
	Kind        string `yaml:"kind"`
	Inverse     string `yaml:"inverse,omitempty"`
	Canonical   bool   `yaml:"canonical,omitempty"`
	Role        string `yaml:"role,omitempty"`
	IRI         string `yaml:"iri,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Load: LoadConfig{
			MaxConcurrentImports: 16,
			Timeout:              60 * time.Second,
			MaxContentSize:       1 << 30,
			UserAgent:            "semonto/1.0",
			FTPUser:              "anonymous",
			FTPPassword:          "anonymous",
		},
		Output: OutputConfig{
			Format:  FormatOBO,
			Profile: ProfileCanonical,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Load.MaxConcurrentImports < 1 {
		return fmt.Errorf("load.max_concurrent_imports must be at least 1")
	}
	if c.Load.Timeout <= 0 {
		return fmt.Errorf("load.timeout must be positive")
	}
	if c.Load.MaxContentSize <= 0 {
		return fmt.Errorf("load.max_content_size must be positive")
	}
	if !slices.Contains([]string{FormatOBO, FormatJSON, FormatTurtle, FormatNTriples}, c.Output.Format) {
		return fmt.Errorf("output.format must be one of obo, json, turtle, ntriples, got %q", c.Output.Format)
	}
	if c.Output.Profile != ProfileCanonical && c.Output.Profile != ProfileFull {
		return fmt.Errorf("output.profile must be canonical or full, got %q", c.Output.Profile)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if _, err := c.RelationTable(); err != nil {
		return err
	}
	return nil
}

// RelationTable returns the default relation table extended with the
// configured relations. A configured kind that already exists replaces it.
func (c *Config) RelationTable() (*relation.Table, error) {
	table := relation.Default()
	for i, rc := range c.Relations {
		if rc.Kind == "" {
			return nil, fmt.Errorf("relations[%d].kind is required", i)
		}
		role, err := relation.ParseRole(rc.Role)
		if err != nil {
			return nil, fmt.Errorf("relations[%d]: %w", i, err)
		}

		opts := []relation.Option{relation.WithRole(role)}
		if rc.Inverse != "" {
			opts = append(opts, relation.WithInverse(relation.Kind(rc.Inverse)))
		}
		if rc.Canonical {
			opts = append(opts, relation.WithCanonical())
		}
		if rc.IRI != "" {
			opts = append(opts, relation.WithIRI(rc.IRI))
		}
		if rc.Description != "" {
			opts = append(opts, relation.WithDescription(rc.Description))
		}
		table.Register(relation.Kind(rc.Kind), opts...)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("relations: %w", err)
	}
	return table, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	layer, err := readLayer(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	config.Merge(layer)
	return config, nil
}

// readLayer reads a YAML file without defaults, so that only the keys the
// file sets take precedence when merged.
func readLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	layer := &Config{}
	if err := yaml.Unmarshal(data, layer); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return layer, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// May hold FTP credentials
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values). Relations are appended.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Load
	if other.Load.Imports != nil {
		v := *other.Load.Imports
		c.Load.Imports = &v
	}
	if other.Load.SkipUnsupportedImports != nil {
		v := *other.Load.SkipUnsupportedImports
		c.Load.SkipUnsupportedImports = &v
	}
	if other.Load.MaxConcurrentImports != 0 {
		c.Load.MaxConcurrentImports = other.Load.MaxConcurrentImports
	}
	if other.Load.Timeout != 0 {
		c.Load.Timeout = other.Load.Timeout
	}
	if other.Load.MaxContentSize != 0 {
		c.Load.MaxContentSize = other.Load.MaxContentSize
	}
	if other.Load.UserAgent != "" {
		c.Load.UserAgent = other.Load.UserAgent
	}
	if other.Load.FTPUser != "" {
		c.Load.FTPUser = other.Load.FTPUser
		c.Load.FTPPassword = other.Load.FTPPassword
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Profile != "" {
		c.Output.Profile = other.Output.Profile
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Relations
	c.Relations = append(c.Relations, other.Relations...)
}
