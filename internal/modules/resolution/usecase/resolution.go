package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	profilein "faithtrack/internal/modules/profile/port/in"
	"faithtrack/internal/modules/resolution/domain"
	"faithtrack/internal/modules/resolution/dto"
	resolutionin "faithtrack/internal/modules/resolution/port/in"
	"faithtrack/internal/modules/resolution/service"
)

type Interactor struct {
	svc      *service.ResolutionService
	profiles profilein.Usecase
	logger   *zap.Logger
}

// NewInteractor wires the resolution usecase. When profiles is set, user
// references (id or email) are resolved to profile ids before use.
func NewInteractor(svc *service.ResolutionService, profiles profilein.Usecase, logger *zap.Logger) resolutionin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, profiles: profiles, logger: logger.Named("resolution")}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.ResolutionOutput, error) {
	userID, err := i.userID(ctx, input.UserID)
	if err != nil {
		return dto.ResolutionOutput{}, err
	}
	r, err := i.svc.Create(ctx, userID, input.Title, input.Description, domain.ParseCategory(input.Category), input.Target, input.Unit, input.Deadline)
	if err != nil {
		i.logger.Debug("create rejected", zap.String("title", input.Title), zap.Error(err))
		return dto.ResolutionOutput{}, err
	}
	i.logger.Info("resolution created",
		zap.String("id", r.ID),
		zap.String("user", r.UserID),
		zap.String("category", string(r.Category)),
		zap.Float64("target", r.Target),
	)
	return toOutput(r), nil
}

func (i *Interactor) List(ctx context.Context, userRef string) ([]dto.ResolutionOutput, error) {
	userID, err := i.userID(ctx, userRef)
	if err != nil {
		return nil, err
	}
	resolutions, err := i.svc.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResolutionOutput, 0, len(resolutions))
	for _, r := range resolutions {
		out = append(out, toOutput(r))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ResolutionOutput, error) {
	r, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ResolutionOutput{}, err
	}
	return toOutput(r), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.ResolutionOutput, error) {
	patch := domain.Patch{
		Title:       input.Title,
		Description: input.Description,
		Target:      input.Target,
		Unit:        input.Unit,
		Deadline:    input.Deadline,
	}
	if input.Category != nil {
		category := domain.ParseCategory(*input.Category)
		patch.Category = &category
	}
	r, err := i.svc.Update(ctx, input.ID, patch)
	if err != nil {
		return dto.ResolutionOutput{}, err
	}
	i.logger.Info("resolution updated", zap.String("id", r.ID))
	return toOutput(r), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	if err := i.svc.Delete(ctx, id); err != nil {
		return err
	}
	i.logger.Info("resolution deleted", zap.String("id", id))
	return nil
}

func (i *Interactor) LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.ResolutionOutput, error) {
	r, err := i.svc.LogProgress(ctx, input.ResolutionID, input.Amount, input.Note)
	if err != nil {
		return dto.ResolutionOutput{}, err
	}
	i.logger.Info("progress logged",
		zap.String("id", r.ID),
		zap.Float64("amount", input.Amount),
		zap.Float64("current", r.Current),
		zap.Int("entries", len(r.Entries)),
	)
	return toOutput(r), nil
}

func (i *Interactor) userID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if i.profiles == nil || ref == "" {
		return ref, nil
	}
	profile, err := i.profiles.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func toOutput(r domain.Resolution) dto.ResolutionOutput {
	entries := make([]dto.EntryOutput, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, dto.EntryOutput{ID: e.ID, Amount: e.Amount, Note: e.Note, Date: e.Date})
	}
	return dto.ResolutionOutput{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Category:    string(r.Category),
		Target:      r.Target,
		Current:     r.Current,
		Unit:        r.Unit,
		CreatedAt:   r.CreatedAt,
		Deadline:    r.Deadline,
		Entries:     entries,
	}
}
