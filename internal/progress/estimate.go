package progress

import (
	"fmt"
	"math"
	"time"
)

// Estimate is a projected completion for a reading plan.
type Estimate struct {
	WeeksNeeded      int           `json:"weeks_needed"`
	ProjectedDate    time.Time     `json:"projected_date"`
	TotalReadingTime time.Duration `json:"total_reading_time"`
	// Determined is false when the plan has no weekly reading time or no
	// speed. WeeksNeeded and ProjectedDate are then zero, while
	// TotalReadingTime is still set whenever speed is known.
	Determined bool `json:"determined"`
}

// maxWeeks caps WeeksNeeded so near-zero speeds stay representable.
const maxWeeks = 1 << 20

// EstimateCompletion projects how many weeks the remaining characters take
// at speed chars/second, reading minutesPerDay minutes on daysPerWeek days.
// The projected date is today plus seven days per week needed.
func EstimateCompletion(remainingChars int, speed float64, daysPerWeek, minutesPerDay int, today time.Time) Estimate {
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return Estimate{}
	}

	totalSeconds := float64(max(remainingChars, 0)) / speed
	est := Estimate{TotalReadingTime: secondsToDuration(totalSeconds)}

	weeklySeconds := float64(daysPerWeek) * float64(minutesPerDay) * 60
	if weeklySeconds <= 0 {
		return est
	}

	weeks := math.Min(math.Ceil(totalSeconds/weeklySeconds), maxWeeks)
	est.WeeksNeeded = int(weeks)
	est.ProjectedDate = today.AddDate(0, 0, 7*est.WeeksNeeded)
	est.Determined = true
	return est
}

// secondsToDuration converts s to a Duration, saturating at the largest
// representable value instead of overflowing.
func secondsToDuration(s float64) time.Duration {
	ns := s * float64(time.Second)
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

// FormatReadingTime renders d as whole hours and minutes, e.g. "218h 9m".
// Seconds are truncated.
func FormatReadingTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}
