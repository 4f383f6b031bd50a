package domain

import "time"

type CategorySummary struct {
	Category    Category
	Count       int
	AvgProgress int
}

// Summary aggregates a user's resolutions for the dashboard.
type Summary struct {
	Total       int
	AvgProgress int
	Completed   int
	// OnPace counts resolutions that are ahead or on track. Completed ones
	// are not included.
	OnPace     int
	Categories []CategorySummary
}

func Summarize(resolutions []Resolution, now time.Time) Summary {
	s := Summary{Total: len(resolutions)}
	sums := map[Category]int{}
	counts := map[Category]int{}
	total := 0
	for _, r := range resolutions {
		pct := ProgressPercent(r)
		total += pct
		if pct >= 100 {
			s.Completed++
		}
		switch AnalyzePace(r, now).Status {
		case StatusAhead, StatusOnTrack:
			s.OnPace++
		}
		sums[r.Category] += pct
		counts[r.Category]++
	}
	s.AvgProgress = average(total, s.Total)

	s.Categories = make([]CategorySummary, 0, len(Categories))
	for _, c := range Categories {
		s.Categories = append(s.Categories, CategorySummary{
			Category:    c,
			Count:       counts[c],
			AvgProgress: average(sums[c], counts[c]),
		})
	}
	return s
}

func average(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(roundHalfUp(float64(sum) / float64(n)))
}
