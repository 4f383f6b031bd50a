package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"faithtrack/internal/modules/profile/domain"
	profileout "faithtrack/internal/modules/profile/port/out"
	"faithtrack/internal/platform/clock"
	apperrors "faithtrack/internal/platform/errors"
	"faithtrack/internal/platform/id"
)

type ProfileService struct {
	clock clock.Clock
	idGen id.Generator
	store profileout.ProfileStore
	// mu serialises the uniqueness check with the write.
	mu sync.Mutex
}

func NewProfileService(clock clock.Clock, idGen id.Generator, store profileout.ProfileStore) *ProfileService {
	return &ProfileService{clock: clock, idGen: idGen, store: store}
}

func (s *ProfileService) Register(ctx context.Context, name, email, church string) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := domain.Profile{
		ID:        s.idGen.New(),
		Name:      strings.TrimSpace(name),
		Email:     domain.NormalizeEmail(email),
		Church:    strings.TrimSpace(church),
		CreatedAt: s.clock.Now(),
	}
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}
	existing, err := s.store.List(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	for _, p := range existing {
		if p.Email == profile.Email {
			return domain.Profile{}, fmt.Errorf("%w: %s", apperrors.ErrProfileExists, profile.Email)
		}
	}
	if _, err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.store.List(ctx)
}

func (s *ProfileService) Resolve(ctx context.Context, ref string) (domain.Profile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Profile{}, apperrors.ErrNoUser
	}
	profiles, err := s.store.List(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	email := domain.NormalizeEmail(ref)
	for _, p := range profiles {
		if p.ID == ref || p.Email == email {
			return p, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("profile %q: %w", ref, apperrors.ErrNotFound)
}
