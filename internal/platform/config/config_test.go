package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"faithtrack/internal/platform/config"
	apperrors "faithtrack/internal/platform/errors"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.New("/vault")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Backend != config.BackendVault {
		t.Fatalf("expected vault backend, got %q", cfg.Backend)
	}
	if cfg.DBPath != filepath.Join("/vault", ".faithtrack", "faithtrack.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty vault path should fail")
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	cfg, err := config.Load(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want, _ := config.New(vault)
	if cfg != want {
		t.Fatalf("expected defaults %+v, got %+v", want, cfg)
	}
}

func TestLoadOverlaysYAMLFile(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	path := config.FilePath(vault)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "backend: SQLite\ndb_path: data/goals.db\ndefault_user: grace@example.com\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.DBPath != filepath.Join(vault, "data", "goals.db") {
		t.Fatalf("relative db path must resolve against vault, got %q", cfg.DBPath)
	}
	if cfg.DefaultUser != "grace@example.com" || cfg.LogLevel != "debug" {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.GRPCAddr == "" {
		t.Fatalf("defaults must survive overlay")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	cfg, _ := config.New(vault)
	cfg.Backend = config.BackendPostgres
	cfg.PostgresDSN = "postgres://localhost/faithtrack"
	if _, err := config.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := config.Load(vault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, loaded)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg, _ := config.New("/vault")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	cfg.Backend = "firestore"
	if err := cfg.Validate(); !errors.Is(err, apperrors.ErrUnknownBackend) {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
	cfg.Backend = config.BackendPostgres
	if err := cfg.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("postgres without dsn should be invalid, got %v", err)
	}
}
