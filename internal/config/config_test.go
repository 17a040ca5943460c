package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/danceworlds-scrape/internal/export"
)

func mapLookup(m map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.URLs) != 3 {
		t.Errorf("URLs = %d, want 3", len(cfg.URLs))
	}
	if cfg.Delay != 2*time.Second || cfg.Timeout != 30*time.Second {
		t.Errorf("delay/timeout = %s/%s", cfg.Delay, cfg.Timeout)
	}
	if cfg.Format != export.FormatCSV || cfg.RankingsYear != 2025 || !cfg.Manual || !cfg.RespectRobots || cfg.RepairJSON {
		t.Errorf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}

	cfg.URLs[0] = "changed"
	if DefaultURLs[0] == "changed" {
		t.Error("Default() shares the DefaultURLs backing array")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(mapLookup(map[string]string{
		"DANCEWORLDS_URLS":           "https://a.example.com/rankings/, https://b.example.com/",
		"DANCEWORLDS_FORMAT":         "XLSX",
		"DANCEWORLDS_DELAY":          "500ms",
		"DANCEWORLDS_RETRIES":        "2",
		"DANCEWORLDS_RANKINGS_YEAR":  "2024",
		"DANCEWORLDS_MANUAL":         "false",
		"DANCEWORLDS_RESPECT_ROBOTS": "0",
		"DANCEWORLDS_REPAIR_JSON":    "true",
		"DANCEWORLDS_OUTPUT_DIR":     "   ",
	}))
	if err != nil {
		t.Fatalf("applyEnv() error: %v", err)
	}

	if len(cfg.URLs) != 2 || cfg.URLs[1] != "https://b.example.com/" {
		t.Errorf("URLs = %v", cfg.URLs)
	}
	if cfg.Format != export.FormatXLSX {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Delay != 500*time.Millisecond || cfg.Retries != 2 || cfg.RankingsYear != 2024 {
		t.Errorf("delay/retries/year = %s/%d/%d", cfg.Delay, cfg.Retries, cfg.RankingsYear)
	}
	if cfg.Manual || cfg.RespectRobots {
		t.Errorf("manual/robots = %v/%v, want false/false", cfg.Manual, cfg.RespectRobots)
	}
	if !cfg.RepairJSON {
		t.Error("REPAIR_JSON=true did not enable RepairJSON")
	}
	if cfg.OutputDir != "." {
		t.Errorf("blank OUTPUT_DIR changed OutputDir to %q", cfg.OutputDir)
	}
}

func TestApplyEnv_Errors(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"DANCEWORLDS_DELAY", "soon"},
		{"DANCEWORLDS_TIMEOUT", "10"},
		{"DANCEWORLDS_RETRIES", "many"},
		{"DANCEWORLDS_MANUAL", "maybe"},
		{"DANCEWORLDS_RANKINGS_YEAR", "next"},
		{"DANCEWORLDS_REPAIR_JSON", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := Default()
			err := cfg.applyEnv(mapLookup(map[string]string{tt.key: tt.value}))
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("applyEnv() error = %v, want mention of %s", err, tt.key)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DANCEWORLDS_REPORT=json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DANCEWORLDS_REPORT") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Report != ReportJSON {
		t.Errorf("Report = %q, want json", cfg.Report)
	}
}

func TestLoad_MissingDotEnv(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("Load() with missing file error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"no urls", func(c *Config) { c.URLs = nil }, true},
		{"bad scheme", func(c *Config) { c.URLs = []string{"ftp://x"} }, true},
		{"bad format", func(c *Config) { c.Format = "parquet" }, true},
		{"bad report", func(c *Config) { c.Report = "html" }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"lowercase log level", func(c *Config) { c.LogLevel = "debug" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }, true},
		{"zero delay", func(c *Config) { c.Delay = 0 }, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"negative retries", func(c *Config) { c.Retries = -1 }, true},
		{"old rankings year", func(c *Config) { c.RankingsYear = 1999 }, true},
		{"sqlite", func(c *Config) { c.Format = export.FormatSQLite }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
