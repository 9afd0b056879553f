package utils

import (
	"fmt"
	"time"
)

// FormatRoundedUnit renders a second count in its largest whole unit:
// "45s", "12m", "3h". Negative input is treated as its magnitude.
func FormatRoundedUnit(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%dh", seconds/3600)
	}
	return fmt.Sprintf("%dm", seconds/60)
}

// Since formats the time elapsed between t and now with FormatRoundedUnit.
func Since(t, now time.Time) string {
	return FormatRoundedUnit(int64(now.Sub(t).Seconds()))
}
