package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}

	if cfg.Server.Address() != "localhost:8080" {
		t.Errorf("expected address localhost:8080, got %s", cfg.Server.Address())
	}

	if cfg.Server.APIPrefix != "/api/v1" {
		t.Errorf("expected default api prefix /api/v1, got %s", cfg.Server.APIPrefix)
	}

	if cfg.History.Depth != 50 {
		t.Errorf("expected default history depth 50, got %d", cfg.History.Depth)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}

	if cfg.Auth.Secret != "" {
		t.Error("expected auth to be disabled by default")
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Create temporary directory with config file
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
server:
  port: 9090
  host: 0.0.0.0
  shutdown_timeout: 3s
log:
  level: debug
  format: json
history:
  depth: 10
output:
  dir: notebooks
`
	if err := os.WriteFile("designer.yml", []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:9090" {
		t.Errorf("expected address 0.0.0.0:9090, got %s", cfg.Server.Address())
	}

	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected shutdown timeout 3s, got %v", cfg.Server.ShutdownTimeout)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}

	if cfg.History.Depth != 10 {
		t.Errorf("expected history depth 10, got %d", cfg.History.Depth)
	}

	if cfg.Output.Dir != "notebooks" {
		t.Errorf("expected output dir notebooks, got %s", cfg.Output.Dir)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("history:\n  depth: 7\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.History.Depth != 7 {
		t.Errorf("expected history depth 7, got %d", cfg.History.Depth)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	t.Setenv("DESIGNER_SERVER_PORT", "7000")
	t.Setenv("DESIGNER_AUTH_SECRET", "0123456789abcdef0123")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000 from environment, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Secret != "0123456789abcdef0123" {
		t.Errorf("expected secret from environment, got %q", cfg.Auth.Secret)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Host: "localhost", Port: 8080, APIPrefix: "/api", ShutdownTimeout: time.Second, MaxBodyBytes: 1024},
			Log:     LogConfig{Level: "info", Format: "json"},
			Auth:    AuthConfig{TokenTTL: time.Hour},
			History: HistoryConfig{Depth: 50},
			Output:  OutputConfig{Dir: "."},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"valid", func(*Config) {}, ""},
		{"prefix without slash", func(c *Config) { c.Server.APIPrefix = "api" }, "server.api_prefix"},
		{"prefix with trailing slash", func(c *Config) { c.Server.APIPrefix = "/api/" }, "server.api_prefix"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"short secret", func(c *Config) { c.Auth.Secret = "short" }, "auth.secret"},
		{"zero history", func(c *Config) { c.History.Depth = 0 }, "history.depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %s", tt.wantKey)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("expected error to mention %s, got %v", tt.wantKey, err)
			}
		})
	}
}
