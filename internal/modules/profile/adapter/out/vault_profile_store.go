package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"faithtrack/internal/modules/profile/domain"
	profileout "faithtrack/internal/modules/profile/port/out"
	"faithtrack/internal/platform/id"
	"faithtrack/internal/platform/markdown"
	"faithtrack/internal/platform/slug"
)

type VaultProfileStore struct {
	vaultPath string
}

func NewVaultProfileStore(vaultPath string) profileout.ProfileStore {
	return &VaultProfileStore{vaultPath: vaultPath}
}

type profileMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Email         string `yaml:"email"`
	Church        string `yaml:"church,omitempty"`
	CreatedAt     string `yaml:"created_at"`
}

func (s *VaultProfileStore) Save(_ context.Context, profile domain.Profile) (string, error) {
	path := filepath.Join(s.vaultPath, "profiles", slug.WithSuffix(profile.Name, id.Short(profile.ID))+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create profile directory: %w", err)
	}
	meta := profileMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            profile.ID,
		Name:          profile.Name,
		Email:         profile.Email,
		Church:        profile.Church,
		CreatedAt:     profile.CreatedAt.Format(time.RFC3339),
	}
	rendered, err := markdown.Encode(meta, "## Prayer Requests\n")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write profile note: %w", err)
	}
	return path, nil
}

func (s *VaultProfileStore) List(_ context.Context) ([]domain.Profile, error) {
	matches, err := filepath.Glob(filepath.Join(s.vaultPath, "profiles", "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob profile notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Profile, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		meta := profileMeta{}
		if _, decodeErr := markdown.Decode(string(content), &meta); decodeErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
		createdAt, _ := time.Parse(time.RFC3339, meta.CreatedAt)
		profile := domain.Profile{
			ID:        meta.ID,
			Name:      meta.Name,
			Email:     domain.NormalizeEmail(meta.Email),
			Church:    meta.Church,
			CreatedAt: createdAt,
		}
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("decode profile %s: %w", path, err)
		}
		out = append(out, profile)
	}
	return out, nil
}
