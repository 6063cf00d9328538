package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	pkgconfig "github.com/starford/taskline/pkg/config"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestStorageConfig_EmptyBackendDefaultsFile(t *testing.T) {
	cfg := StorageConfig{Path: "tasks.txt"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty backend should default to file: %v", err)
	}
	if cfg.Backend != "file" {
		t.Errorf("backend = %q, want %q", cfg.Backend, "file")
	}
}

func TestStorageConfig_InvalidBackend(t *testing.T) {
	cfg := StorageConfig{Backend: "redis", Path: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid backend should fail validation")
	}
}

func TestStorageConfig_EmptyPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty path should fail validation")
	}
}

func TestConfig_LoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("TASKLINE_TEST_DIR", dir)
	content := "app:\n  log_level: DEBUG\nstorage:\n  backend: sqlite\n  path: ${TASKLINE_TEST_DIR}/tasks.db\n  watch: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v, want DEBUG", cfg.App.LogLevel)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Path != filepath.Join(dir, "tasks.db") || !cfg.Storage.Watch {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}
