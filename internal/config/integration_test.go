package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestE2EConfigFlow exercises the full precedence chain: defaults, global
// file, project file, environment.
func TestE2EConfigFlow(t *testing.T) {
	// Isolate both config locations from the real environment.
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DataURL != "" {
			t.Errorf("expected empty data_url default, got %s", cfg.DataURL)
		}
		if cfg.DataDir != ".promptdiff" {
			t.Errorf("expected default data_dir .promptdiff, got %s", cfg.DataDir)
		}
		if cfg.Breakpoint != DefaultBreakpoint {
			t.Errorf("expected default breakpoint %d, got %d", DefaultBreakpoint, cfg.Breakpoint)
		}
		if cfg.HTTPTimeout != 0 {
			t.Errorf("expected no fetch timeout by default, got %v", cfg.HTTPTimeout)
		}
	})

	t.Run("GlobalConfig", func(t *testing.T) {
		writeYAML(t, GlobalPath(), "data_url: https://global.example.com\nlog_level: debug\n")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DataURL != "https://global.example.com" {
			t.Errorf("expected global data_url, got %s", cfg.DataURL)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("expected global log_level debug, got %s", cfg.LogLevel)
		}
	})

	t.Run("ProjectOverridesGlobal", func(t *testing.T) {
		writeYAML(t, ProjectPath(), "data_url: https://project.example.com\nbreakpoint: 100\n")
		defer func() { _ = os.Remove(ProjectPath()) }()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DataURL != "https://project.example.com" {
			t.Errorf("expected project data_url, got %s", cfg.DataURL)
		}
		if cfg.Breakpoint != 100 {
			t.Errorf("expected project breakpoint 100, got %d", cfg.Breakpoint)
		}
		// Global value not shadowed by project survives.
		if cfg.LogLevel != "debug" {
			t.Errorf("expected global log_level to survive merge, got %s", cfg.LogLevel)
		}
	})

	t.Run("EnvOverridesFiles", func(t *testing.T) {
		t.Setenv("PROMPTDIFF_DATA_URL", "https://env.example.com")
		t.Setenv("PROMPTDIFF_HTTP_TIMEOUT", "30s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DataURL != "https://env.example.com" {
			t.Errorf("expected env data_url, got %s", cfg.DataURL)
		}
		if cfg.HTTPTimeout != 30*time.Second {
			t.Errorf("expected env http_timeout 30s, got %v", cfg.HTTPTimeout)
		}
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected Validate to reject empty data_url")
	}

	cfg.DataURL = "https://example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected Validate to accept data_url, got: %v", err)
	}
}

func TestResolveLogsURL(t *testing.T) {
	cfg := &Config{DataURL: "https://example.com/"}
	if got := cfg.ResolveLogsURL(); got != "https://example.com/logs" {
		t.Errorf("ResolveLogsURL() = %q", got)
	}

	cfg.LogsURL = "https://logs.example.com"
	if got := cfg.ResolveLogsURL(); got != "https://logs.example.com" {
		t.Errorf("explicit logs_url should win, got %q", got)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "promptdiff.yml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading starter config: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("starter config is empty")
	}

	// Second write must refuse to clobber.
	if err := WriteDefault(path); err == nil {
		t.Error("expected WriteDefault to refuse overwriting")
	}
}

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
