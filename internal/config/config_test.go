package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stackslip/stackslip/internal/config"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// writeConfig writes a config.json into dir and changes the working
// directory to dir for the duration of the test.
func writeConfig(t *testing.T, dir string, f config.File) {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

// clearEnv unsets STACKEX_KEY and STACKSLIP_SITE for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvKey, "")
	t.Setenv(config.EnvSite, "")
}

// ─── Defaults ─────────────────────────────────────────────────────────────────

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir()) // no config.json here

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Site != config.DefaultSite {
		t.Errorf("Site: expected %q, got %q", config.DefaultSite, cfg.Site)
	}
	if cfg.Format != config.DefaultFormat {
		t.Errorf("Format: expected %q, got %q", config.DefaultFormat, cfg.Format)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("Timeout: expected %v, got %v", config.DefaultTimeout, cfg.Timeout)
	}
	if cfg.Rate != config.DefaultRate {
		t.Errorf("Rate: expected %g, got %g", config.DefaultRate, cfg.Rate)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("BaseURL: expected default, got %q", cfg.BaseURL)
	}
	if cfg.Filter != config.DefaultFilter {
		t.Errorf("Filter: expected default, got %q", cfg.Filter)
	}
	if cfg.Key != "" {
		t.Errorf("Key: expected empty, got %q", cfg.Key)
	}
}

// ─── Config file loading ──────────────────────────────────────────────────────

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, t.TempDir(), config.File{
		Key:           "filekey123",
		Site:          "superuser",
		DefaultFormat: "json",
		Timeout:       "60s",
		Rate:          2.5,
		BaseURL:       "https://custom.example.com/",
		Filter:        "!custom",
		OutDir:        "/tmp/receipts",
	})

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Key != "filekey123" {
		t.Errorf("Key: expected filekey123, got %q", cfg.Key)
	}
	if cfg.Site != "superuser" {
		t.Errorf("Site: expected superuser, got %q", cfg.Site)
	}
	if cfg.Format != "json" {
		t.Errorf("Format: expected json, got %q", cfg.Format)
	}
	if cfg.Timeout.String() != "1m0s" {
		t.Errorf("Timeout: expected 1m0s, got %q", cfg.Timeout.String())
	}
	if cfg.Rate != 2.5 {
		t.Errorf("Rate: expected 2.5, got %g", cfg.Rate)
	}
	if cfg.BaseURL != "https://custom.example.com/" {
		t.Errorf("BaseURL: expected custom URL, got %q", cfg.BaseURL)
	}
	if cfg.Filter != "!custom" {
		t.Errorf("Filter: expected !custom, got %q", cfg.Filter)
	}
	if cfg.OutDir != "/tmp/receipts" {
		t.Errorf("OutDir: expected /tmp/receipts, got %q", cfg.OutDir)
	}
	if cfg.ConfigPath == "" {
		t.Error("ConfigPath should record where config.json was found")
	}
}

// ─── Precedence ───────────────────────────────────────────────────────────────

func TestEnvOverridesFile(t *testing.T) {
	writeConfig(t, t.TempDir(), config.File{Key: "filekey", Site: "serverfault"})
	t.Setenv(config.EnvKey, "envkey")
	t.Setenv(config.EnvSite, "askubuntu")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Key != "envkey" {
		t.Errorf("Key: env should beat file, got %q", cfg.Key)
	}
	if cfg.Site != "askubuntu" {
		t.Errorf("Site: env should beat file, got %q", cfg.Site)
	}
}

func TestFlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv(config.EnvKey, "envkey")

	cfg, err := config.Load("flagkey")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Key != "flagkey" {
		t.Errorf("Key: flag should beat env, got %q", cfg.Key)
	}
}

// ─── Validation ───────────────────────────────────────────────────────────────

func TestValidateAcceptsMissingKey(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("a missing app key must be valid (anonymous quota), got %v", err)
	}
}

func TestValidateRejectsEmptySite(t *testing.T) {
	cfg := &config.Config{Site: "", Rate: 5}
	if err := cfg.Validate(); err == nil {
		t.Error("empty site should fail validation")
	}
}

func TestValidateRejectsNonPositiveRate(t *testing.T) {
	cfg := &config.Config{Site: "stackoverflow", Rate: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("zero rate should fail validation")
	}
}

// ─── Misc ─────────────────────────────────────────────────────────────────────

func TestSiteHost(t *testing.T) {
	cfg := &config.Config{Site: "stackoverflow"}
	if got := cfg.SiteHost(); got != "stackoverflow.com" {
		t.Errorf("SiteHost: expected stackoverflow.com, got %q", got)
	}
}

func TestRedactedKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"ab", "****"},
		{"abcdefgh", "ab****gh"},
	}
	for _, c := range cases {
		cfg := &config.Config{Key: c.key}
		if got := cfg.RedactedKey(); got != c.want {
			t.Errorf("RedactedKey(%q): expected %q, got %q", c.key, c.want, got)
		}
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	tmpl := config.Template()
	tmpl.Key = "roundtrip"

	if err := config.WriteFile(path, tmpl); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var f config.File
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.Key != "roundtrip" || f.Site != config.DefaultSite {
		t.Errorf("round trip mismatch: %+v", f)
	}
}
