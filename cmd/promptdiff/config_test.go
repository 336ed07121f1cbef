package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/promptdiff/internal/config"
)

func TestConfigCommand(t *testing.T) {
	t.Run("runs without error when no config exists", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Chdir(tempDir)

		if err := runConfig(configCmd, []string{}); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})

	t.Run("displays global config when it exists", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Chdir(tempDir)

		configDir := filepath.Join(tempDir, ".config", "promptdiff")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatal(err)
		}
		configContent := `data_url: https://example.com
data_dir: test-data
`
		if err := os.WriteFile(filepath.Join(configDir, "promptdiff.yml"), []byte(configContent), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := runConfig(configCmd, []string{}); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})
}

func TestConfigInitCommand(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Chdir(tempDir)

	flagInitProject = true
	defer func() { flagInitProject = false }()

	if err := runConfigInit(configInitCmd, []string{}); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !fileExists(config.ProjectPath()) {
		t.Error("expected project config file to be written")
	}

	// Refuses to overwrite
	if err := runConfigInit(configInitCmd, []string{}); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestHostLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "example.com"},
		{"https://example.com:8080/data", "example.com:8080"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		if got := hostLabel(tt.in); got != tt.want {
			t.Errorf("hostLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
