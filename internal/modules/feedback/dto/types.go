package dto

import "time"

type PaceOutput struct {
	DaysLeft        int
	DaysElapsed     int
	TotalDays       int
	CurrentPace     float64
	RequiredPace    float64
	ProjectedFinish string
	Reachable       bool
}

type ReportOutput struct {
	ResolutionID    string
	Title           string
	Category        string
	Unit            string
	Status          string
	Message         string
	PercentComplete int
	// Pace is nil once the resolution is completed.
	Pace *PaceOutput
}

type SuggestionsOutput struct {
	ResolutionID string
	Status       string
	Suggestions  []string
}

type VerseOutput struct {
	Category  string
	Text      string
	Reference string
}

type PointOutput struct {
	Date  time.Time
	Total float64
}

type EntryOutput struct {
	Date   time.Time
	Amount float64
	Note   string
}

type ProgressOutput struct {
	ResolutionID string
	Percent      int
	Current      float64
	Target       float64
	Unit         string
	Series       []PointOutput
}

type CategorySummaryOutput struct {
	Category    string
	Count       int
	AvgProgress int
}

type DashboardItemOutput struct {
	ResolutionID string
	Title        string
	Category     string
	Percent      int
	Status       string
}

type DashboardOutput struct {
	UserID      string
	Total       int
	AvgProgress int
	Completed   int
	OnPace      int
	Categories  []CategorySummaryOutput
	Resolutions []DashboardItemOutput
}

// DetailOutput bundles everything the resolution screen shows.
type DetailOutput struct {
	Report      ReportOutput
	Suggestions []string
	Verse       VerseOutput
	Progress    ProgressOutput
	Description string
	Deadline    time.Time
	Entries     []EntryOutput
}
