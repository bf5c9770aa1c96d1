package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Fatalf("expected stdio transport, got %q", cfg.Server.Transport)
	}
	if cfg.Server.Address != ":8000" {
		t.Fatalf("unexpected address %q", cfg.Server.Address)
	}
	if cfg.Upstream.BaseURL != "https://api.weatherxm.com/v1" {
		t.Fatalf("unexpected base url %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.Upstream.APIKey)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled by default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	path := filepath.Join(t.TempDir(), "weathermcp.yaml")
	data := []byte("server:\n  transport: sse\n  address: \":9000\"\nupstream:\n  api_key: from-file\n  timeout: 5s\nmetrics:\n  enabled: false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Transport != TransportSSE {
		t.Fatalf("expected sse transport, got %q", cfg.Server.Transport)
	}
	if cfg.Server.Address != ":9000" {
		t.Fatalf("unexpected address %q", cfg.Server.Address)
	}
	if cfg.Upstream.APIKey != "from-file" {
		t.Fatalf("unexpected api key %q", cfg.Upstream.APIKey)
	}
	if cfg.Upstream.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Upstream.Timeout)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled")
	}
}

func TestLoadEnvOverridesAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "from-env")

	path := filepath.Join(t.TempDir(), "weathermcp.yaml")
	if err := os.WriteFile(path, []byte("upstream:\n  api_key: from-file\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Upstream.APIKey != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.Upstream.APIKey)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weathermcp.yaml")
	if err := os.WriteFile(path, []byte("server: [broken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
