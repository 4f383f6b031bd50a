package domain

import (
	"sort"
	"time"
)

// ProgressPercent is the capped completion used for lists and dashboards.
func ProgressPercent(r Resolution) int {
	target := finite(r.Target)
	if target <= 0 {
		return 0
	}
	return clampPercent(roundHalfUp(finite(r.Current) / target * 100))
}

type Point struct {
	Date  time.Time
	Total float64
}

// CumulativeSeries returns the running total of r's entries in date order.
// Entries sharing a timestamp keep their stored order. With no entries the
// series is a single zero point at the creation date.
func CumulativeSeries(r Resolution) []Point {
	if len(r.Entries) == 0 {
		return []Point{{Date: r.CreatedAt, Total: 0}}
	}
	entries := make([]Entry, len(r.Entries))
	copy(entries, r.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	out := make([]Point, 0, len(entries))
	total := 0.0
	for _, e := range entries {
		total += finite(e.Amount)
		out = append(out, Point{Date: e.Date, Total: total})
	}
	return out
}
