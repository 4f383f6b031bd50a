package in

import (
	"context"

	"faithtrack/internal/modules/resolution/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.ResolutionOutput, error)
	List(ctx context.Context, userID string) ([]dto.ResolutionOutput, error)
	Get(ctx context.Context, id string) (dto.ResolutionOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.ResolutionOutput, error)
	Delete(ctx context.Context, id string) error
	LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.ResolutionOutput, error)
}
