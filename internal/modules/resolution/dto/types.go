package dto

import "time"

type CreateInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
	Target      float64
	Unit        string
	Deadline    time.Time
}

// UpdateInput carries a partial edit. Nil fields are left unchanged.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Category    *string
	Target      *float64
	Unit        *string
	Deadline    *time.Time
}

type LogProgressInput struct {
	ResolutionID string
	Amount       float64
	Note         string
}

type EntryOutput struct {
	ID     string
	Amount float64
	Note   string
	Date   time.Time
}

type ResolutionOutput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    string
	Target      float64
	Current     float64
	Unit        string
	CreatedAt   time.Time
	Deadline    time.Time
	Entries     []EntryOutput
}
