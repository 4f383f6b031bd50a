package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"faithtrack/internal/modules/feedback/domain"
)

func TestProgressPercent(t *testing.T) {
	t.Parallel()
	cases := []struct {
		target, current float64
		want            int
	}{
		{target: 1000, current: 0, want: 0},
		{target: 1000, current: 556, want: 56},
		{target: 1000, current: 1000, want: 100},
		{target: 1000, current: 2500, want: 100},
		{target: 0, current: 10, want: 0},
		{target: 100, current: -5, want: 0},
	}
	for _, tc := range cases {
		r := domain.Resolution{Target: tc.target, Current: tc.current}
		if got := domain.ProgressPercent(r); got != tc.want {
			t.Fatalf("ProgressPercent(%v/%v) = %d, want %d", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestCumulativeSeriesSortsByDate(t *testing.T) {
	t.Parallel()
	r := domain.Resolution{
		CreatedAt: jan1,
		Entries: []domain.Entry{
			{ID: "c", Amount: 30, Date: jan11},
			{ID: "a", Amount: 10, Date: jan1},
			{ID: "b", Amount: 20, Date: jan6},
		},
	}
	want := []domain.Point{
		{Date: jan1, Total: 10},
		{Date: jan6, Total: 30},
		{Date: jan11, Total: 60},
	}
	if diff := cmp.Diff(want, domain.CumulativeSeries(r)); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
	if r.Entries[0].ID != "c" {
		t.Fatalf("input entries must keep their order")
	}
}

func TestCumulativeSeriesEmpty(t *testing.T) {
	t.Parallel()
	r := domain.Resolution{CreatedAt: jan1}
	want := []domain.Point{{Date: jan1, Total: 0}}
	if diff := cmp.Diff(want, domain.CumulativeSeries(r)); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestCumulativeSeriesKeepsOrderOfTies(t *testing.T) {
	t.Parallel()
	noon := jan6.Add(12 * time.Hour)
	r := domain.Resolution{
		Entries: []domain.Entry{
			{ID: "first", Amount: 1, Date: noon},
			{ID: "second", Amount: 2, Date: noon},
		},
	}
	got := domain.CumulativeSeries(r)
	if len(got) != 2 || got[0].Total != 1 || got[1].Total != 3 {
		t.Fatalf("unexpected series %+v", got)
	}
}
