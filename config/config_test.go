package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/semonto/vocabulary/relation"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Load.MaxConcurrentImports != 16 {
		t.Errorf("expected 16 concurrent imports, got %d", cfg.Load.MaxConcurrentImports)
	}
	if cfg.Load.Timeout != 60*time.Second {
		t.Errorf("expected timeout 60s, got %v", cfg.Load.Timeout)
	}
	if !cfg.Load.ImportsEnabled() {
		t.Error("expected imports enabled by default")
	}
	if !cfg.Load.SkipUnsupported() {
		t.Error("expected unsupported imports skipped by default")
	}
	if cfg.Output.Format != FormatOBO {
		t.Errorf("expected default format obo, got %s", cfg.Output.Format)
	}
	if cfg.Output.Profile != ProfileCanonical {
		t.Errorf("expected default profile canonical, got %s", cfg.Output.Profile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.Load.MaxConcurrentImports = 0 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.Load.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Format = "owl" },
			wantErr: true,
		},
		{
			name:    "unknown profile",
			modify:  func(c *Config) { c.Output.Profile = "partial" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "relation without kind",
			modify:  func(c *Config) { c.Relations = []RelationConfig{{Role: "parent"}} },
			wantErr: true,
		},
		{
			name:    "relation with unknown role",
			modify:  func(c *Config) { c.Relations = []RelationConfig{{Kind: "regulates", Role: "sibling"}} },
			wantErr: true,
		},
		{
			name: "relation with unregistered inverse",
			modify: func(c *Config) {
				c.Relations = []RelationConfig{{Kind: "regulates", Inverse: "regulated_by", Role: "parent"}}
			},
			wantErr: true,
		},
		{
			name: "relation pair",
			modify: func(c *Config) {
				c.Relations = []RelationConfig{
					{Kind: "regulates", Inverse: "regulated_by", Role: "parent", Canonical: true},
					{Kind: "regulated_by", Role: "child"},
				}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRelationTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Relations = []RelationConfig{
		{Kind: "develops_from", Inverse: "develops_into", Role: "parent", Canonical: true, IRI: "http://purl.obolibrary.org/obo/RO_0002202"},
		{Kind: "develops_into", Role: "child"},
	}

	table, err := cfg.RelationTable()
	if err != nil {
		t.Fatalf("RelationTable() error = %v", err)
	}

	if inv, ok := table.Inverse("develops_from"); !ok || inv != "develops_into" {
		t.Errorf("expected inverse develops_into, got %q", inv)
	}
	if !table.IsCanonical("develops_from") {
		t.Error("expected develops_from to be canonical")
	}
	if got := table.IRIFor("develops_from"); got != "http://purl.obolibrary.org/obo/RO_0002202" {
		t.Errorf("unexpected IRI %s", got)
	}
	if inv, ok := table.Inverse(relation.IsA); !ok || inv != relation.CanBe {
		t.Error("default relations must be kept")
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
load:
  imports: false
  max_concurrent_imports: 4
  timeout: 10m
  ftp_user: curator
  ftp_password: secret
output:
  format: turtle
  profile: full
relations:
  - kind: regulates
    role: parent
    canonical: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Load.ImportsEnabled() {
		t.Error("expected imports disabled")
	}
	if cfg.Load.MaxConcurrentImports != 4 {
		t.Errorf("expected 4 concurrent imports, got %d", cfg.Load.MaxConcurrentImports)
	}
	if cfg.Load.Timeout != 10*time.Minute {
		t.Errorf("expected timeout 10m, got %v", cfg.Load.Timeout)
	}
	if cfg.Load.FTPUser != "curator" || cfg.Load.FTPPassword != "secret" {
		t.Errorf("unexpected FTP credentials %s/%s", cfg.Load.FTPUser, cfg.Load.FTPPassword)
	}
	if cfg.Load.MaxContentSize != 1<<30 {
		t.Errorf("expected default content size to survive, got %d", cfg.Load.MaxContentSize)
	}
	if cfg.Output.Format != FormatTurtle {
		t.Errorf("expected format turtle, got %s", cfg.Output.Format)
	}
	if cfg.Output.Profile != ProfileFull {
		t.Errorf("expected profile full, got %s", cfg.Output.Profile)
	}
	if len(cfg.Relations) != 1 || cfg.Relations[0].Kind != "regulates" {
		t.Errorf("unexpected relations %+v", cfg.Relations)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	no := false
	override := &Config{
		Load:   LoadConfig{Imports: &no},
		Output: OutputConfig{Format: FormatJSON},
	}

	base.Merge(override)

	if base.Output.Format != FormatJSON {
		t.Errorf("expected format json, got %s", base.Output.Format)
	}
	// Profile should remain from base since override didn't set it
	if base.Output.Profile != ProfileCanonical {
		t.Errorf("expected profile to remain default, got %s", base.Output.Profile)
	}
	if base.Load.ImportsEnabled() {
		t.Error("expected imports disabled")
	}

	no = true
	if base.Load.ImportsEnabled() {
		t.Error("merge must copy, not alias, the override")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.Format = FormatNTriples

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Output.Format != FormatNTriples {
		t.Errorf("expected format ntriples, got %s", loaded.Output.Format)
	}
}
