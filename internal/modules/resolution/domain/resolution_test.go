package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"faithtrack/internal/modules/resolution/domain"
	apperrors "faithtrack/internal/platform/errors"
)

func validResolution() domain.Resolution {
	return domain.Resolution{
		ID:       "r-1",
		UserID:   "u-1",
		Title:    "Read the Bible",
		Category: domain.CategorySpiritual,
		Target:   1189,
		Deadline: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestResolutionValidate(t *testing.T) {
	t.Parallel()
	if err := validResolution().Validate(); err != nil {
		t.Fatalf("expected valid resolution, got %v", err)
	}

	cases := map[string]func(*domain.Resolution){
		"missing title":    func(r *domain.Resolution) { r.Title = "  " },
		"missing user":     func(r *domain.Resolution) { r.UserID = "" },
		"unknown category": func(r *domain.Resolution) { r.Category = "fitness" },
		"zero target":      func(r *domain.Resolution) { r.Target = 0 },
		"nan target":       func(r *domain.Resolution) { r.Target = math.NaN() },
		"missing deadline": func(r *domain.Resolution) { r.Deadline = time.Time{} },
	}
	for name, mutate := range cases {
		r := validResolution()
		mutate(&r)
		if err := r.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestRecomputeSumsEntries(t *testing.T) {
	t.Parallel()
	r := validResolution()
	r.Current = 999
	r.Entries = []domain.ProgressEntry{{Amount: 3}, {Amount: 4.5}}
	r.Recompute()
	if r.Current != 7.5 {
		t.Fatalf("expected 7.5, got %v", r.Current)
	}
}

func TestPatchApplyOnlyTouchesSetFields(t *testing.T) {
	t.Parallel()
	title := " New title "
	target := 50.0
	got := domain.Patch{Title: &title, Target: &target}.Apply(validResolution())
	if got.Title != "New title" || got.Target != 50 {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Category != domain.CategorySpiritual || got.UserID != "u-1" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestDefaultUnit(t *testing.T) {
	t.Parallel()
	if domain.CategorySpiritual.DefaultUnit() != "chapters" {
		t.Fatalf("spiritual resolutions count chapters")
	}
	if domain.CategoryFinancial.DefaultUnit() != "" {
		t.Fatalf("financial resolutions have no default unit")
	}
	if domain.ParseCategory(" Financial ") != domain.CategoryFinancial {
		t.Fatalf("category parsing must be case insensitive")
	}
}
