package in

import (
	"context"

	"faithtrack/internal/modules/profile/dto"
	profilein "faithtrack/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, name, email, church string) (dto.ProfileOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{Name: name, Email: email, Church: church})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProfileOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Resolve(ctx context.Context, ref string) (dto.ProfileOutput, error) {
	return h.usecase.Resolve(ctx, ref)
}
