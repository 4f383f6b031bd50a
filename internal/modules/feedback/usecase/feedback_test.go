package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"faithtrack/internal/modules/feedback/domain"
	"faithtrack/internal/modules/feedback/dto"
	"faithtrack/internal/modules/feedback/service"
	"faithtrack/internal/modules/feedback/usecase"
	apperrors "faithtrack/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fixedRandom struct{ n int }

func (f fixedRandom) IntN(int) int { return f.n }

type fakeSource struct {
	items []domain.Resolution
}

func (f *fakeSource) Get(_ context.Context, id string) (domain.Resolution, error) {
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Resolution{}, fmt.Errorf("resolution %q: %w", id, apperrors.ErrNotFound)
}

func (f *fakeSource) ListByUser(_ context.Context, userRef string) ([]domain.Resolution, error) {
	if userRef == "" {
		return nil, apperrors.ErrNoUser
	}
	out := []domain.Resolution{}
	for _, r := range f.items {
		if r.UserID == userRef {
			out = append(out, r)
		}
	}
	return out, nil
}

var (
	start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now   = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
)

func newSource() *fakeSource {
	return &fakeSource{items: []domain.Resolution{
		{
			ID: "bible", UserID: "u-1", Title: "Read the Bible", Category: domain.CategorySpiritual,
			Target: 1000, Current: 100, Unit: "chapters", CreatedAt: start, Deadline: start.AddDate(0, 0, 10),
			Entries: []domain.Entry{
				{ID: "e-2", Amount: 60, Date: start.AddDate(0, 0, 3)},
				{ID: "e-1", Amount: 40, Note: "Genesis", Date: start.AddDate(0, 0, 1)},
			},
		},
		{
			ID: "fund", UserID: "u-1", Title: "Emergency Fund", Category: domain.CategoryFinancial,
			Target: 1000, Current: 1000, Unit: "KES", CreatedAt: start, Deadline: start.AddDate(0, 0, 10),
		},
		{
			ID: "other", UserID: "u-2", Title: "Marathon", Category: domain.CategoryCustom,
			Target: 42, Current: 21, Unit: "km", CreatedAt: start, Deadline: start.AddDate(0, 0, 10),
		},
	}}
}

func TestAnalyzeAndSuggest(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewFeedbackService(fakeClock{now: now}, fixedRandom{}, newSource()), zap.NewNop())
	ctx := context.Background()

	report, err := uc.Analyze(ctx, "bible")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if report.Status != "behind" || report.PercentComplete != 10 || report.Pace == nil {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Pace.RequiredPace != 180 || report.Pace.ProjectedFinish != "2025-02-20" {
		t.Fatalf("unexpected pace %+v", report.Pace)
	}

	suggestions, err := uc.Suggest(ctx, "bible")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if suggestions.Suggestions[0] != "Try reading 180 chapters per day to catch up." {
		t.Fatalf("unexpected suggestion %q", suggestions.Suggestions[0])
	}

	completed, err := uc.Analyze(ctx, "fund")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if completed.Status != "completed" || completed.Pace != nil {
		t.Fatalf("completed report must not carry pace: %+v", completed)
	}

	if _, err := uc.Analyze(ctx, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVerseUsesInjectedRandomness(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewFeedbackService(fakeClock{now: now}, fixedRandom{n: 2}, newSource()), nil)
	got, err := uc.Verse(context.Background(), "Financial")
	if err != nil {
		t.Fatalf("verse: %v", err)
	}
	want := dto.VerseOutput{Category: "financial", Text: "The plans of the diligent lead surely to abundance.", Reference: "Proverbs 21:5"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("verse mismatch (-want +got):\n%s", diff)
	}
}

func TestProgressAndDetail(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewFeedbackService(fakeClock{now: now}, fixedRandom{}, newSource()), zap.NewNop())
	ctx := context.Background()

	progress, err := uc.Progress(ctx, "bible")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	wantSeries := []dto.PointOutput{
		{Date: start.AddDate(0, 0, 1), Total: 40},
		{Date: start.AddDate(0, 0, 3), Total: 100},
	}
	if diff := cmp.Diff(wantSeries, progress.Series); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
	if progress.Percent != 10 {
		t.Fatalf("expected 10%%, got %d", progress.Percent)
	}

	detail, err := uc.Detail(ctx, "bible")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Report.Status != "behind" || len(detail.Suggestions) != 3 {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.Verse.Reference != "Psalm 119:105" {
		t.Fatalf("detail verse should come from the spiritual table, got %+v", detail.Verse)
	}
	if len(detail.Entries) != 2 || detail.Entries[1].Note != "Genesis" {
		t.Fatalf("detail should list entries as stored, got %+v", detail.Entries)
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewFeedbackService(fakeClock{now: now}, fixedRandom{}, newSource()), zap.NewNop())

	got, err := uc.Dashboard(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	want := dto.DashboardOutput{
		UserID:      "u-1",
		Total:       2,
		AvgProgress: 55,
		Completed:   1,
		OnPace:      0,
		Categories: []dto.CategorySummaryOutput{
			{Category: "financial", Count: 1, AvgProgress: 100},
			{Category: "spiritual", Count: 1, AvgProgress: 10},
			{Category: "custom", Count: 0, AvgProgress: 0},
		},
		Resolutions: []dto.DashboardItemOutput{
			{ResolutionID: "bible", Title: "Read the Bible", Category: "spiritual", Percent: 10, Status: "behind"},
			{ResolutionID: "fund", Title: "Emergency Fund", Category: "financial", Percent: 100, Status: "completed"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dashboard mismatch (-want +got):\n%s", diff)
	}

	if _, err := uc.Dashboard(context.Background(), ""); !errors.Is(err, apperrors.ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}
