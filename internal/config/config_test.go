package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TIPWISER_CONFIG", "PORT", "LOG_LEVEL", "LOG_FORMAT", "CURRENCY", "SESSION_TTL", "SWEEP_INTERVAL", "MAX_SESSIONS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Currency != "$" {
		t.Errorf("currency = %q, want $", cfg.Currency)
	}
	if cfg.Sessions.TTL != 30*time.Minute {
		t.Errorf("ttl = %v, want 30m", cfg.Sessions.TTL)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tipwiser.yaml")
	content := `
server:
  port: 9090
sessions:
  ttl: 5m
  max_sessions: 10
currency: "€"
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	clearEnv(t)
	t.Setenv("TIPWISER_CONFIG", path)
	t.Setenv("PORT", "9191")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("env should override file port, got %d", cfg.Server.Port)
	}
	if cfg.Sessions.TTL != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", cfg.Sessions.TTL)
	}
	if cfg.Sessions.MaxSessions != 10 {
		t.Errorf("max sessions = %d, want 10", cfg.Sessions.MaxSessions)
	}
	if cfg.Currency != "€" {
		t.Errorf("currency = %q, want €", cfg.Currency)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "debug" {
		t.Errorf("log = %+v", cfg.Log)
	}
	// Unset keys keep their defaults.
	if cfg.Sessions.SweepInterval != time.Minute {
		t.Errorf("sweep interval = %v, want 1m", cfg.Sessions.SweepInterval)
	}
}

func TestLoad_LogFormatCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIPWISER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "negative max", mutate: func(c *Config) { c.Sessions.MaxSessions = -1 }, wantErr: true},
		{name: "negative ttl", mutate: func(c *Config) { c.Sessions.TTL = -time.Second }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "upper case log format", mutate: func(c *Config) { c.Log.Format = "Text" }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
