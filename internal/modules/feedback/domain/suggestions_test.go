package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"faithtrack/internal/modules/feedback/domain"
)

func behindReport(required float64) domain.PaceReport {
	return domain.PaceReport{Status: domain.StatusBehind, Pace: &domain.Pace{RequiredPace: required}}
}

func TestSuggestionsBehindSpiritualRoundsChaptersUp(t *testing.T) {
	t.Parallel()
	r := domain.Resolution{Category: domain.CategorySpiritual, Unit: "chapters"}
	got := domain.Suggestions(r, behindReport(2.3))
	want := []string{
		"Try reading 3 chapters per day to catch up.",
		"Set a specific time each day for reading — mornings work great!",
		"Try an audio Bible during commutes to add extra chapters.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestionsBehindFinancialFormatsAmount(t *testing.T) {
	t.Parallel()
	r := domain.Resolution{Category: domain.CategoryFinancial, Unit: "KES"}
	got := domain.Suggestions(r, behindReport(12500.5))
	want := []string{
		"Increase your daily saving to 12,500.5 KES to finish on time.",
		"Look for ways to cut unnecessary expenses this week.",
		"Consider setting up automatic transfers to your savings.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestionsBehindCustomWithoutUnit(t *testing.T) {
	t.Parallel()
	r := domain.Resolution{Category: domain.CategoryCustom}
	got := domain.Suggestions(r, behindReport(180))
	want := []string{
		"You need to complete 180 per day to finish on time.",
		"Break your goal into smaller weekly targets.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestionsUnknownCategoryUsesGenericBranch(t *testing.T) {
	t.Parallel()
	r := domain.Resolution{Category: "fitness", Unit: "km"}
	got := domain.Suggestions(r, behindReport(4.25))
	if len(got) != 2 || got[0] != "You need to complete 4.25 km per day to finish on time." {
		t.Fatalf("unexpected suggestions %q", got)
	}
}

func TestSuggestionsByStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		category domain.Category
		status   domain.Status
		want     []string
	}{
		{
			name:     "completed",
			category: domain.CategoryFinancial,
			status:   domain.StatusCompleted,
			want: []string{
				"Keep setting new goals — growth never stops!",
				"Consider mentoring someone else on their journey.",
			},
		},
		{
			name:     "on track spiritual adds journaling",
			category: domain.CategorySpiritual,
			status:   domain.StatusOnTrack,
			want: []string{
				"Great consistency! Keep up this pace.",
				"Try to push a little harder this week to build a buffer.",
				"Consider journaling your reflections on what you read.",
			},
		},
		{
			name:     "on track financial",
			category: domain.CategoryFinancial,
			status:   domain.StatusOnTrack,
			want: []string{
				"Great consistency! Keep up this pace.",
				"Try to push a little harder this week to build a buffer.",
			},
		},
		{
			name:     "ahead financial adds investing",
			category: domain.CategoryFinancial,
			status:   domain.StatusAhead,
			want: []string{
				"Amazing progress! You could finish early at this rate.",
				"Consider increasing your target — aim even higher!",
				"Think about investing your surplus to grow your savings.",
			},
		},
		{
			name:     "ahead custom",
			category: domain.CategoryCustom,
			status:   domain.StatusAhead,
			want: []string{
				"Amazing progress! You could finish early at this rate.",
				"Consider increasing your target — aim even higher!",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := domain.Suggestions(domain.Resolution{Category: tc.category}, domain.PaceReport{Status: tc.status})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSuggestionsFollowAnalyzePace(t *testing.T) {
	t.Parallel()
	r := tenDayGoal(100)
	r.Category = domain.CategorySpiritual
	r.Unit = "chapters"
	got := domain.Suggestions(r, domain.AnalyzePace(r, jan6))
	if got[0] != "Try reading 180 chapters per day to catch up." {
		t.Fatalf("unexpected first suggestion %q", got[0])
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()
	cases := map[float64]string{
		0:        "0",
		999:      "999",
		1234.5:   "1,234.5",
		1000000:  "1,000,000",
		-2500.25: "-2,500.25",
	}
	for in, want := range cases {
		if got := domain.FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}
