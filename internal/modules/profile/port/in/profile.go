package in

import (
	"context"

	"faithtrack/internal/modules/profile/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.ProfileOutput, error)
	List(ctx context.Context) ([]dto.ProfileOutput, error)
	// Resolve finds a profile by id or by email.
	Resolve(ctx context.Context, ref string) (dto.ProfileOutput, error)
}
