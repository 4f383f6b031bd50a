package service

import (
	"context"

	"faithtrack/internal/modules/feedback/domain"
	feedbackout "faithtrack/internal/modules/feedback/port/out"
	"faithtrack/internal/platform/clock"
	"faithtrack/internal/platform/random"
)

type FeedbackService struct {
	clock  clock.Clock
	random random.Source
	source feedbackout.ResolutionSource
}

func NewFeedbackService(clock clock.Clock, random random.Source, source feedbackout.ResolutionSource) *FeedbackService {
	return &FeedbackService{clock: clock, random: random, source: source}
}

func (s *FeedbackService) Analyze(ctx context.Context, resolutionID string) (domain.Resolution, domain.PaceReport, error) {
	r, err := s.source.Get(ctx, resolutionID)
	if err != nil {
		return domain.Resolution{}, domain.PaceReport{}, err
	}
	return r, domain.AnalyzePace(r, s.clock.Now()), nil
}

func (s *FeedbackService) Suggest(ctx context.Context, resolutionID string) (domain.Resolution, domain.PaceReport, []string, error) {
	r, report, err := s.Analyze(ctx, resolutionID)
	if err != nil {
		return domain.Resolution{}, domain.PaceReport{}, nil, err
	}
	return r, report, domain.Suggestions(r, report), nil
}

func (s *FeedbackService) Verse(category domain.Category) domain.Verse {
	return domain.SelectVerse(category, s.random)
}

func (s *FeedbackService) Progress(ctx context.Context, resolutionID string) (domain.Resolution, int, []domain.Point, error) {
	r, err := s.source.Get(ctx, resolutionID)
	if err != nil {
		return domain.Resolution{}, 0, nil, err
	}
	return r, domain.ProgressPercent(r), domain.CumulativeSeries(r), nil
}

// Dashboard returns the user's resolutions with their reports, in the
// order the source lists them, plus the aggregate summary.
func (s *FeedbackService) Dashboard(ctx context.Context, userRef string) ([]domain.Resolution, []domain.PaceReport, domain.Summary, error) {
	resolutions, err := s.source.ListByUser(ctx, userRef)
	if err != nil {
		return nil, nil, domain.Summary{}, err
	}
	now := s.clock.Now()
	reports := make([]domain.PaceReport, 0, len(resolutions))
	for _, r := range resolutions {
		reports = append(reports, domain.AnalyzePace(r, now))
	}
	return resolutions, reports, domain.Summarize(resolutions, now), nil
}
