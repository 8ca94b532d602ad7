package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
app:
  log_level: debug
sources:
  - name: new-grad
    url: https://example.org/README.md
state:
  backend: file
  policy: window
  window: 25
smtp:
  host: smtp.example.org
  username: me@example.org
  recipients: [" you@example.org ", "you@example.org", "alt@example.org"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg = Defaults(cfg)

	if cfg.App.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.App.LogLevel)
	}
	if cfg.State.Window != 25 {
		t.Fatalf("window = %d", cfg.State.Window)
	}
	if cfg.Fetch.TimeoutSeconds != 30 || cfg.SMTP.Port != 587 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	// Recipients are trimmed and de-duplicated.
	if len(cfg.SMTP.Recipients) != 2 {
		t.Fatalf("recipients = %v", cfg.SMTP.Recipients)
	}
}

func TestValidateOK(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(Defaults(cfg), false); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no sources", func(c *Config) { c.Sources = nil }, "at least one source"},
		{"bad url", func(c *Config) { c.Sources[0].URL = "::nope" }, "valid absolute url"},
		{"bad backend", func(c *Config) { c.State.Backend = "redis" }, "state.backend"},
		{"bad policy", func(c *Config) { c.State.Policy = "sometimes" }, "state.policy"},
		{"zero window", func(c *Config) { c.State.Window = -1 }, "state.window"},
		{"no smtp host", func(c *Config) { c.SMTP.Host = "" }, "smtp.host"},
		{"no recipients", func(c *Config) { c.SMTP.Recipients = nil }, "recipients"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleYAML))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			cfg = Defaults(cfg)
			tc.mutate(&cfg)
			err = Validate(cfg, false)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateDryRunSkipsSMTP(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg = Defaults(cfg)
	cfg.SMTP.Host = ""
	cfg.SMTP.Recipients = nil

	if err := Validate(cfg, true); err != nil {
		t.Fatalf("dry-run validate should pass without smtp: %v", err)
	}
}

func TestEnsureUserConfigSeedsOnce(t *testing.T) {
	dataDir := t.TempDir()
	defaultPath := writeConfig(t, sampleYAML)

	p1, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	// Mutate the user copy; a second ensure must leave it alone.
	if err := os.WriteFile(p1, []byte("app:\n  log_level: warn\n"), 0o644); err != nil {
		t.Fatalf("write user config: %v", err)
	}
	p2, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("paths differ: %s vs %s", p1, p2)
	}
	b, _ := os.ReadFile(p2)
	if !strings.Contains(string(b), "warn") {
		t.Fatal("existing user config was overwritten")
	}
}

func TestSourceURLEnvOverride(t *testing.T) {
	t.Setenv(sourceURLEnv, "https://override.example/README.md")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].URL != "https://override.example/README.md" {
		t.Fatalf("env override not applied: %+v", cfg.Sources)
	}
}
