package in

import (
	"context"

	"faithtrack/internal/modules/feedback/dto"
)

type Usecase interface {
	Analyze(ctx context.Context, resolutionID string) (dto.ReportOutput, error)
	Suggest(ctx context.Context, resolutionID string) (dto.SuggestionsOutput, error)
	Verse(ctx context.Context, category string) (dto.VerseOutput, error)
	Progress(ctx context.Context, resolutionID string) (dto.ProgressOutput, error)
	Dashboard(ctx context.Context, userID string) (dto.DashboardOutput, error)
	Detail(ctx context.Context, resolutionID string) (dto.DetailOutput, error)
}
