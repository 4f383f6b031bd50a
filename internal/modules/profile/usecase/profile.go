package usecase

import (
	"context"

	"faithtrack/internal/modules/profile/domain"
	"faithtrack/internal/modules/profile/dto"
	profilein "faithtrack/internal/modules/profile/port/in"
	"faithtrack/internal/modules/profile/service"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Register(ctx, input.Name, input.Email, input.Church)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProfileOutput, error) {
	profiles, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileOutput, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toOutput(p))
	}
	return out, nil
}

func (i *Interactor) Resolve(ctx context.Context, ref string) (dto.ProfileOutput, error) {
	profile, err := i.svc.Resolve(ctx, ref)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func toOutput(p domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{ID: p.ID, Name: p.Name, Email: p.Email, Church: p.Church, CreatedAt: p.CreatedAt}
}
