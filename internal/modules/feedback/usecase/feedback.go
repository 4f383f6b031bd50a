package usecase

import (
	"context"

	"go.uber.org/zap"

	"faithtrack/internal/modules/feedback/domain"
	"faithtrack/internal/modules/feedback/dto"
	feedbackin "faithtrack/internal/modules/feedback/port/in"
	"faithtrack/internal/modules/feedback/service"
)

type Interactor struct {
	svc    *service.FeedbackService
	logger *zap.Logger
}

func NewInteractor(svc *service.FeedbackService, logger *zap.Logger) feedbackin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, logger: logger.Named("feedback")}
}

func (i *Interactor) Analyze(ctx context.Context, resolutionID string) (dto.ReportOutput, error) {
	r, report, err := i.svc.Analyze(ctx, resolutionID)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	i.logger.Debug("pace analysed",
		zap.String("id", r.ID),
		zap.String("status", string(report.Status)),
		zap.Int("percent", report.PercentComplete),
	)
	return toReport(r, report), nil
}

func (i *Interactor) Suggest(ctx context.Context, resolutionID string) (dto.SuggestionsOutput, error) {
	r, report, suggestions, err := i.svc.Suggest(ctx, resolutionID)
	if err != nil {
		return dto.SuggestionsOutput{}, err
	}
	return dto.SuggestionsOutput{ResolutionID: r.ID, Status: string(report.Status), Suggestions: suggestions}, nil
}

func (i *Interactor) Verse(_ context.Context, category string) (dto.VerseOutput, error) {
	c := domain.ParseCategory(category)
	v := i.svc.Verse(c)
	return dto.VerseOutput{Category: string(c), Text: v.Text, Reference: v.Reference}, nil
}

func (i *Interactor) Progress(ctx context.Context, resolutionID string) (dto.ProgressOutput, error) {
	r, percent, series, err := i.svc.Progress(ctx, resolutionID)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return toProgress(r, percent, series), nil
}

func (i *Interactor) Dashboard(ctx context.Context, userRef string) (dto.DashboardOutput, error) {
	resolutions, reports, summary, err := i.svc.Dashboard(ctx, userRef)
	if err != nil {
		return dto.DashboardOutput{}, err
	}
	out := dto.DashboardOutput{
		UserID:      userRef,
		Total:       summary.Total,
		AvgProgress: summary.AvgProgress,
		Completed:   summary.Completed,
		OnPace:      summary.OnPace,
		Categories:  make([]dto.CategorySummaryOutput, 0, len(summary.Categories)),
		Resolutions: make([]dto.DashboardItemOutput, 0, len(resolutions)),
	}
	for _, c := range summary.Categories {
		out.Categories = append(out.Categories, dto.CategorySummaryOutput{Category: string(c.Category), Count: c.Count, AvgProgress: c.AvgProgress})
	}
	for idx, r := range resolutions {
		if r.UserID != "" {
			out.UserID = r.UserID
		}
		out.Resolutions = append(out.Resolutions, dto.DashboardItemOutput{
			ResolutionID: r.ID,
			Title:        r.Title,
			Category:     string(r.Category),
			Percent:      domain.ProgressPercent(r),
			Status:       string(reports[idx].Status),
		})
	}
	return out, nil
}

func (i *Interactor) Detail(ctx context.Context, resolutionID string) (dto.DetailOutput, error) {
	r, report, suggestions, err := i.svc.Suggest(ctx, resolutionID)
	if err != nil {
		return dto.DetailOutput{}, err
	}
	verse := i.svc.Verse(r.Category)
	entries := make([]dto.EntryOutput, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, dto.EntryOutput{Date: e.Date, Amount: e.Amount, Note: e.Note})
	}
	return dto.DetailOutput{
		Report:      toReport(r, report),
		Suggestions: suggestions,
		Verse:       dto.VerseOutput{Category: string(r.Category), Text: verse.Text, Reference: verse.Reference},
		Progress:    toProgress(r, domain.ProgressPercent(r), domain.CumulativeSeries(r)),
		Description: r.Description,
		Deadline:    r.Deadline,
		Entries:     entries,
	}, nil
}

func toReport(r domain.Resolution, report domain.PaceReport) dto.ReportOutput {
	out := dto.ReportOutput{
		ResolutionID:    r.ID,
		Title:           r.Title,
		Category:        string(r.Category),
		Unit:            r.Unit,
		Status:          string(report.Status),
		Message:         report.Message,
		PercentComplete: report.PercentComplete,
	}
	if report.Pace != nil {
		out.Pace = &dto.PaceOutput{
			DaysLeft:        report.Pace.DaysLeft,
			DaysElapsed:     report.Pace.DaysElapsed,
			TotalDays:       report.Pace.TotalDays,
			CurrentPace:     report.Pace.CurrentPace,
			RequiredPace:    report.Pace.RequiredPace,
			ProjectedFinish: report.Pace.ProjectedFinishLabel(),
			Reachable:       report.Pace.Reachable,
		}
	}
	return out
}

func toProgress(r domain.Resolution, percent int, series []domain.Point) dto.ProgressOutput {
	points := make([]dto.PointOutput, 0, len(series))
	for _, p := range series {
		points = append(points, dto.PointOutput{Date: p.Date, Total: p.Total})
	}
	return dto.ProgressOutput{
		ResolutionID: r.ID,
		Percent:      percent,
		Current:      r.Current,
		Target:       r.Target,
		Unit:         r.Unit,
		Series:       points,
	}
}
