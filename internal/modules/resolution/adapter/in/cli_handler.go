package in

import (
	"context"
	"time"

	"faithtrack/internal/modules/resolution/dto"
	resolutionin "faithtrack/internal/modules/resolution/port/in"
)

type CLIHandler struct {
	usecase resolutionin.Usecase
}

func NewCLIHandler(usecase resolutionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, userRef, title, description, category string, target float64, unit string, deadline time.Time) (dto.ResolutionOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{
		UserID:      userRef,
		Title:       title,
		Description: description,
		Category:    category,
		Target:      target,
		Unit:        unit,
		Deadline:    deadline,
	})
}

func (h CLIHandler) List(ctx context.Context, userRef string) ([]dto.ResolutionOutput, error) {
	return h.usecase.List(ctx, userRef)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ResolutionOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.ResolutionOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) LogProgress(ctx context.Context, id string, amount float64, note string) (dto.ResolutionOutput, error) {
	return h.usecase.LogProgress(ctx, dto.LogProgressInput{ResolutionID: id, Amount: amount, Note: note})
}
