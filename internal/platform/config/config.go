package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "faithtrack/internal/platform/errors"
)

const (
	BackendVault    = "vault"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	stateDir = ".faithtrack"
)

type Config struct {
	VaultPath   string `yaml:"-"`
	DBPath      string `yaml:"db_path"`
	Backend     string `yaml:"backend"`
	PostgresDSN string `yaml:"postgres_dsn,omitempty"`
	DefaultUser string `yaml:"default_user,omitempty"`
	LogLevel    string `yaml:"log_level"`
	LogPath     string `yaml:"log_path"`
	GRPCAddr    string `yaml:"grpc_addr"`
}

// New returns the defaults for a vault without reading any file.
func New(vaultPath string) (Config, error) {
	if strings.TrimSpace(vaultPath) == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	return Config{
		VaultPath: vaultPath,
		DBPath:    filepath.Join(vaultPath, stateDir, "faithtrack.db"),
		Backend:   BackendVault,
		LogLevel:  "info",
		LogPath:   filepath.Join(vaultPath, stateDir, "faithtrack.log"),
		GRPCAddr:  "127.0.0.1:50551",
	}, nil
}

// Load applies defaults and then overlays <vault>/.faithtrack/config.yaml
// when it exists. Flags are layered on top by the caller.
func Load(vaultPath string) (Config, error) {
	cfg, err := New(vaultPath)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(FilePath(vaultPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	overlay := Config{}
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.merge(overlay)
	return cfg, nil
}

// Save writes cfg to <vault>/.faithtrack/config.yaml.
func Save(cfg Config) (string, error) {
	path := FilePath(cfg.VaultPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func FilePath(vaultPath string) string {
	return filepath.Join(vaultPath, stateDir, "config.yaml")
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendVault, BackendSQLite:
		return nil
	case BackendPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("%w: postgres backend requires a dsn", apperrors.ErrInvalidInput)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownBackend, c.Backend)
	}
}

func (c *Config) merge(o Config) {
	if o.DBPath != "" {
		c.DBPath = resolve(c.VaultPath, o.DBPath)
	}
	if o.Backend != "" {
		c.Backend = strings.ToLower(o.Backend)
	}
	if o.PostgresDSN != "" {
		c.PostgresDSN = o.PostgresDSN
	}
	if o.DefaultUser != "" {
		c.DefaultUser = o.DefaultUser
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogPath != "" {
		c.LogPath = resolve(c.VaultPath, o.LogPath)
	}
	if o.GRPCAddr != "" {
		c.GRPCAddr = o.GRPCAddr
	}
}

// resolve keeps relative paths in the config file anchored at the vault.
func resolve(vaultPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(vaultPath, p)
}
