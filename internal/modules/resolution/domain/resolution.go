package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "faithtrack/internal/platform/errors"
)

type Category string

const (
	CategoryFinancial Category = "financial"
	CategorySpiritual Category = "spiritual"
	CategoryCustom    Category = "custom"
)

const (
	ManagedLogStart = "<!-- faithtrack:log:start -->"
	ManagedLogEnd   = "<!-- faithtrack:log:end -->"
	SchemaVersion   = 1
)

func (c Category) Validate() error {
	switch c {
	case CategoryFinancial, CategorySpiritual, CategoryCustom:
		return nil
	default:
		return fmt.Errorf("%w: unsupported category %q", apperrors.ErrInvalidInput, string(c))
	}
}

// DefaultUnit is the unit used when a resolution is created without one.
func (c Category) DefaultUnit() string {
	if c == CategorySpiritual {
		return "chapters"
	}
	return ""
}

func ParseCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

type ProgressEntry struct {
	ID     string
	Amount float64
	Note   string
	Date   time.Time
}

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
	Entries     []ProgressEntry
}

func (r Resolution) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if err := r.Category.Validate(); err != nil {
		return err
	}
	if math.IsNaN(r.Target) || math.IsInf(r.Target, 0) || r.Target <= 0 {
		return fmt.Errorf("%w: target must be a positive number", apperrors.ErrInvalidInput)
	}
	if r.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// Recompute sets Current to the sum of the entries.
func (r *Resolution) Recompute() {
	total := 0.0
	for _, e := range r.Entries {
		total += e.Amount
	}
	r.Current = total
}

// Patch holds the editable fields of a resolution. Nil fields are left as
// they are.
type Patch struct {
	Title       *string
	Description *string
	Category    *Category
	Target      *float64
	Unit        *string
	Deadline    *time.Time
}

func (p Patch) Apply(r Resolution) Resolution {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		r.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Target != nil {
		r.Target = *p.Target
	}
	if p.Unit != nil {
		r.Unit = strings.TrimSpace(*p.Unit)
	}
	if p.Deadline != nil {
		r.Deadline = *p.Deadline
	}
	return r
}
