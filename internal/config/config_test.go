package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/timvw/panefm/internal/journal"
	"github.com/timvw/panefm/internal/transfer"
)

var envKeys = []string{
	"PANEFM_THEME", "PANEFM_REVERSE", "PANEFM_PANES", "PANEFM_OVERWRITE",
	"PANEFM_JOURNAL", "PANEFM_JOURNAL_SIZE", "PANEFM_LOG_FILE", "PANEFM_LOG_LEVEL",
	"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_HEADERS",
}

// inDir changes to a fresh temp dir with HOME pointed at it, clears panefm
// env vars, and optionally writes .panefm.yaml.
func inDir(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	if content != "" {
		if err := os.WriteFile(filepath.Join(dir, ".panefm.yaml"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Theme != "dark" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "dark")
	}
	if cfg.Panes != 2 {
		t.Errorf("Panes: got %d, want %d", cfg.Panes, 2)
	}
	if cfg.Overwrite != "replace" {
		t.Errorf("Overwrite: got %q, want %q", cfg.Overwrite, "replace")
	}
	if cfg.JournalSize != 100 {
		t.Errorf("JournalSize: got %d, want %d", cfg.JournalSize, 100)
	}
	if cfg.Reverse {
		t.Error("Reverse: got true, want false")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	inDir(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile: got %q, want empty", cfg.ConfigFile)
	}
	if cfg.Policy != transfer.Replace {
		t.Errorf("Policy: got %v, want replace", cfg.Policy)
	}
}

func TestLoadFromFile(t *testing.T) {
	inDir(t, `theme: light
reverse: true
panes: 3
overwrite: refuse
journal: /tmp/panefm-test.jsonl
journal_size: 20
log_level: debug
keys:
  mark_move: ["M"]
  quit: ["Q", "ctrl+q"]
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ConfigFile != ".panefm.yaml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, "light")
	}
	if !cfg.Reverse {
		t.Error("Reverse: got false, want true")
	}
	if cfg.Panes != 3 {
		t.Errorf("Panes: got %d, want %d", cfg.Panes, 3)
	}
	if cfg.Policy != transfer.Refuse {
		t.Errorf("Policy: got %v, want refuse", cfg.Policy)
	}
	if cfg.JournalPath() != "/tmp/panefm-test.jsonl" {
		t.Errorf("JournalPath: got %q", cfg.JournalPath())
	}
	if cfg.JournalSize != 20 {
		t.Errorf("JournalSize: got %d, want %d", cfg.JournalSize, 20)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
	if got := cfg.Keys["quit"]; len(got) != 2 || got[1] != "ctrl+q" {
		t.Errorf("Keys[quit]: got %v", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	inDir(t, "theme: light\npanes: 3\noverwrite: refuse\n")

	t.Setenv("PANEFM_THEME", "dark")
	t.Setenv("PANEFM_PANES", "4")
	t.Setenv("PANEFM_OVERWRITE", "REPLACE")
	t.Setenv("PANEFM_REVERSE", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Theme != "dark" {
		t.Errorf("Theme: got %q, want %q (env should override file)", cfg.Theme, "dark")
	}
	if cfg.Panes != 4 {
		t.Errorf("Panes: got %d, want %d (env should override file)", cfg.Panes, 4)
	}
	if cfg.Policy != transfer.Replace {
		t.Errorf("Policy: got %v, want replace (env should override file)", cfg.Policy)
	}
	if !cfg.Reverse {
		t.Error("Reverse: got false, want true")
	}
	if cfg.OTELEndpoint != "http://localhost:4318" {
		t.Errorf("OTELEndpoint: got %q", cfg.OTELEndpoint)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown theme", content: "theme: neon\n"},
		{name: "zero panes", content: "panes: -1\n"},
		{name: "unknown overwrite", content: "overwrite: merge\n"},
		{name: "bad log level", content: "log_level: loud\n"},
		{name: "bad journal size", content: "journal_size: -5\n"},
		{name: "malformed yaml", content: "panes: [\n"},
		{name: "non-numeric env panes", env: map[string]string{"PANEFM_PANES": "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inDir(t, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestJournalPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	tests := []struct {
		journal string
		want    string
	}{
		{"", journal.DefaultPath()},
		{JournalOff, ""},
		{"/var/log/j.jsonl", "/var/log/j.jsonl"},
	}
	for _, tt := range tests {
		cfg := &Config{Journal: tt.journal}
		if got := cfg.JournalPath(); got != tt.want {
			t.Errorf("JournalPath(%q) = %q, want %q", tt.journal, got, tt.want)
		}
	}
}
