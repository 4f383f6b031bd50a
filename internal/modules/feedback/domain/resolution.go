// Package domain holds the pace-analysis and progress-aggregation engine.
// Every function here is pure: callers pass a resolution snapshot and the
// current time, and get new values back.
package domain

import (
	"math"
	"strings"
	"time"
)

type Category string

const (
	CategoryFinancial Category = "financial"
	CategorySpiritual Category = "spiritual"
	CategoryCustom    Category = "custom"
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryFinancial, CategorySpiritual, CategoryCustom}

func ParseCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

func (c Category) Known() bool {
	switch c {
	case CategoryFinancial, CategorySpiritual, CategoryCustom:
		return true
	default:
		return false
	}
}

// Entry is one logged increment.
type Entry struct {
	ID     string
	Amount float64
	Note   string
	Date   time.Time
}

// Resolution is the read-only snapshot the engine works on. Current is
// expected to equal the sum of Entries; the engine trusts it as given.
type Resolution struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    Category
	Target      float64
	Current     float64
	Unit        string
	CreatedAt   time.Time
	Deadline    time.Time
	Entries     []Entry
}

// finite maps NaN and ±Inf to zero so no arithmetic downstream can produce
// a non-finite report.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundTo2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
