package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Suggestions turns a pace report into an ordered list of recommendations.
// The output depends only on the category, the status and the required pace.
func Suggestions(r Resolution, report PaceReport) []string {
	switch report.Status {
	case StatusCompleted:
		return []string{
			"Keep setting new goals — growth never stops!",
			"Consider mentoring someone else on their journey.",
		}
	case StatusBehind:
		required := 0.0
		if report.Pace != nil {
			required = report.Pace.RequiredPace
		}
		return behindSuggestions(r.Category, required, r.Unit)
	case StatusOnTrack:
		out := []string{
			"Great consistency! Keep up this pace.",
			"Try to push a little harder this week to build a buffer.",
		}
		if r.Category == CategorySpiritual {
			out = append(out, "Consider journaling your reflections on what you read.")
		}
		return out
	default:
		out := []string{
			"Amazing progress! You could finish early at this rate.",
			"Consider increasing your target — aim even higher!",
		}
		if r.Category == CategoryFinancial {
			out = append(out, "Think about investing your surplus to grow your savings.")
		}
		return out
	}
}

func behindSuggestions(category Category, required float64, unit string) []string {
	switch category {
	case CategoryFinancial:
		return []string{
			fmt.Sprintf("Increase your daily saving to %s to finish on time.", withUnit(required, unit)),
			"Look for ways to cut unnecessary expenses this week.",
			"Consider setting up automatic transfers to your savings.",
		}
	case CategorySpiritual:
		// Whole chapters only.
		return []string{
			fmt.Sprintf("Try reading %d chapters per day to catch up.", int(math.Ceil(required))),
			"Set a specific time each day for reading — mornings work great!",
			"Try an audio Bible during commutes to add extra chapters.",
		}
	default:
		return []string{
			fmt.Sprintf("You need to complete %s per day to finish on time.", withUnit(required, unit)),
			"Break your goal into smaller weekly targets.",
		}
	}
}

// FormatAmount renders v with thousands separators, e.g. 12500.5 -> "12,500.5".
func FormatAmount(v float64) string {
	return humanize.Commaf(finite(v))
}

func withUnit(v float64, unit string) string {
	return strings.TrimSpace(FormatAmount(v) + " " + strings.TrimSpace(unit))
}
