package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
	if cfg.DBPath != "labstock.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".labstock.yml")
	content := "provider: ollama\nmodel: llama3\ndb_path: /tmp/inv.db\nport: 9000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != ProviderOllama || cfg.DBPath != "/tmp/inv.db" || cfg.Port != 9000 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("LABSTOCK_PORT", "7070")
	t.Setenv("LABSTOCK_ACTOR", "nightshift")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Port)
	}
	if cfg.Actor != "nightshift" {
		t.Errorf("expected env actor, got %q", cfg.Actor)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	bad := *cfg
	bad.Provider = "mainframe"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}

	bad = *cfg
	bad.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	bad = *cfg
	bad.DBPath = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty db path")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".labstock.yml")
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic
	cfg.AlertWebhook = "https://hooks.example.com/stock"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Provider != ProviderAnthropic || loaded.AlertWebhook != cfg.AlertWebhook {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
