package in

import (
	"context"

	"faithtrack/internal/modules/feedback/dto"
	feedbackin "faithtrack/internal/modules/feedback/port/in"
)

type CLIHandler struct {
	usecase feedbackin.Usecase
}

func NewCLIHandler(usecase feedbackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, resolutionID string) (dto.ReportOutput, error) {
	return h.usecase.Analyze(ctx, resolutionID)
}

func (h CLIHandler) Suggest(ctx context.Context, resolutionID string) (dto.SuggestionsOutput, error) {
	return h.usecase.Suggest(ctx, resolutionID)
}

func (h CLIHandler) Verse(ctx context.Context, category string) (dto.VerseOutput, error) {
	return h.usecase.Verse(ctx, category)
}

func (h CLIHandler) Progress(ctx context.Context, resolutionID string) (dto.ProgressOutput, error) {
	return h.usecase.Progress(ctx, resolutionID)
}

func (h CLIHandler) Dashboard(ctx context.Context, userRef string) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx, userRef)
}

func (h CLIHandler) Detail(ctx context.Context, resolutionID string) (dto.DetailOutput, error) {
	return h.usecase.Detail(ctx, resolutionID)
}
