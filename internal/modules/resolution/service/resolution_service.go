package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"faithtrack/internal/modules/resolution/domain"
	resolutionout "faithtrack/internal/modules/resolution/port/out"
	"faithtrack/internal/platform/clock"
	apperrors "faithtrack/internal/platform/errors"
	"faithtrack/internal/platform/id"
)

type ResolutionService struct {
	clock clock.Clock
	idGen id.Generator
	repo  resolutionout.Repository
}

func NewResolutionService(clock clock.Clock, idGen id.Generator, repo resolutionout.Repository) *ResolutionService {
	return &ResolutionService{clock: clock, idGen: idGen, repo: repo}
}

func (s *ResolutionService) Create(ctx context.Context, userID, title, description string, category domain.Category, target float64, unit string, deadline time.Time) (domain.Resolution, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = category.DefaultUnit()
	}
	resolution := domain.Resolution{
		ID:          s.idGen.New(),
		UserID:      strings.TrimSpace(userID),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    category,
		Target:      target,
		Unit:        unit,
		CreatedAt:   s.clock.Now(),
		Deadline:    deadline,
	}
	if err := resolution.Validate(); err != nil {
		return domain.Resolution{}, err
	}
	if err := s.repo.Create(ctx, resolution); err != nil {
		return domain.Resolution{}, err
	}
	return resolution, nil
}

func (s *ResolutionService) List(ctx context.Context, userID string) ([]domain.Resolution, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrNoUser
	}
	resolutions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(resolutions, func(i, j int) bool {
		return resolutions[i].CreatedAt.Before(resolutions[j].CreatedAt)
	})
	return resolutions, nil
}

func (s *ResolutionService) Get(ctx context.Context, id string) (domain.Resolution, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ResolutionService) Update(ctx context.Context, id string, patch domain.Patch) (domain.Resolution, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Resolution{}, err
	}
	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return domain.Resolution{}, err
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Resolution{}, err
	}
	return updated, nil
}

// Delete removes a resolution. Removing an unknown id succeeds.
func (s *ResolutionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

func (s *ResolutionService) LogProgress(ctx context.Context, id string, amount float64, note string) (domain.Resolution, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.Resolution{}, fmt.Errorf("%w: amount must be a finite number", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(id) == "" {
		return domain.Resolution{}, fmt.Errorf("%w: resolution id is required", apperrors.ErrInvalidInput)
	}
	entry := domain.ProgressEntry{
		ID:     s.idGen.New(),
		Amount: amount,
		Note:   strings.TrimSpace(note),
		Date:   s.clock.Now(),
	}
	return s.repo.AppendEntry(ctx, id, entry)
}
