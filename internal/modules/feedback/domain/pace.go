package domain

import (
	"fmt"
	"math"
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusAhead     Status = "ahead"
	StatusOnTrack   Status = "on-track"
	StatusBehind    Status = "behind"
)

const (
	// toleranceBand is the width, in percentage points, of the on-track band
	// around the linear expectation.
	toleranceBand = 5.0

	msPerDay = float64(24 * time.Hour / time.Millisecond)

	// maxProjectionMillis keeps now+offset inside int64 milliseconds, with
	// headroom for any realistic now. Only pace that small is unreachable.
	maxProjectionMillis = float64(math.MaxInt64 / 2)

	completedMessage = "🎉 Congratulations! You've completed this resolution!"
)

// Pace carries the schedule figures. It is absent from a report once the
// resolution is completed.
type Pace struct {
	DaysLeft     int
	DaysElapsed  int
	TotalDays    int
	CurrentPace  float64
	RequiredPace float64
	// ProjectedFinish is meaningful only when Reachable is true.
	ProjectedFinish time.Time
	Reachable       bool
}

type PaceReport struct {
	Status          Status
	Message         string
	PercentComplete int
	Pace            *Pace
}

// ProjectedFinishLabel renders the projection as a calendar date, or a
// sentinel when the current pace never reaches the target.
func (p Pace) ProjectedFinishLabel() string {
	if !p.Reachable {
		return "never at current pace"
	}
	return p.ProjectedFinish.Format("2006-01-02")
}

// AnalyzePace classifies schedule adherence of r as of now. It never fails:
// degenerate targets and windows fall back to well-defined values.
func AnalyzePace(r Resolution, now time.Time) PaceReport {
	target := finite(r.Target)
	current := finite(r.Current)

	percent := 0.0
	if target > 0 {
		percent = current / target * 100
	}
	if percent >= 100 {
		return PaceReport{Status: StatusCompleted, Message: completedMessage, PercentComplete: 100}
	}

	totalDays := math.Max(1, daysBetween(r.CreatedAt, r.Deadline))
	daysElapsed := math.Max(1, daysBetween(r.CreatedAt, now))
	daysLeft := math.Max(0, daysBetween(now, r.Deadline))

	expected := daysElapsed / totalDays * 100

	currentPace := current / daysElapsed
	remaining := target - current
	requiredPace := remaining
	if daysLeft > 0 {
		requiredPace = remaining / daysLeft
	}

	pace := &Pace{
		DaysLeft:     int(roundHalfUp(daysLeft)),
		DaysElapsed:  int(roundHalfUp(daysElapsed)),
		TotalDays:    int(roundHalfUp(totalDays)),
		CurrentPace:  roundTo2(currentPace),
		RequiredPace: roundTo2(requiredPace),
	}
	if currentPace > 0 {
		daysToFinish := math.Max(0, remaining/currentPace)
		if daysToFinish*msPerDay <= maxProjectionMillis {
			pace.ProjectedFinish = addDays(now, daysToFinish)
			pace.Reachable = true
		}
	}

	status, message := classify(percent, expected)
	return PaceReport{
		Status:          status,
		Message:         message,
		PercentComplete: clampPercent(roundHalfUp(percent)),
		Pace:            pace,
	}
}

func classify(percent, expected float64) (Status, string) {
	p := int(roundHalfUp(percent))
	e := int(roundHalfUp(expected))
	switch {
	case percent >= expected+toleranceBand:
		return StatusAhead, fmt.Sprintf("🚀 You're ahead of schedule! %d%% complete vs %d%% expected.", p, e)
	case percent >= expected-toleranceBand:
		return StatusOnTrack, fmt.Sprintf("✅ You're right on track! %d%% complete.", p)
	default:
		return StatusBehind, fmt.Sprintf("⚠️ You're falling behind. %d%% complete but %d%% expected by now.", p, e)
	}
}

// daysBetween returns the signed, fractional number of days from a to b.
func daysBetween(a, b time.Time) float64 {
	return float64(b.UnixMilli()-a.UnixMilli()) / msPerDay
}

func addDays(t time.Time, days float64) time.Time {
	return time.UnixMilli(t.UnixMilli() + int64(days*msPerDay)).In(t.Location())
}

func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}
