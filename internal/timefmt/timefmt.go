package timefmt

import (
	"fmt"
	"math"
)

// MinutesToHHMM formats a minute total as a zero-padded "HH:MM" display
// string. Negative and non-finite inputs render as "00:00" so one bad
// value from the store never breaks the display.
func MinutesToHHMM(totalMinutes float64) string {
	if math.IsNaN(totalMinutes) || math.IsInf(totalMinutes, 0) || totalMinutes < 0 {
		return "00:00"
	}
	hours := int(math.Floor(totalMinutes / 60))
	minutes := int(math.Round(math.Mod(totalMinutes, 60)))
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// FormatMinutes formats minutes as a human-readable string like "1h 30m"
// or "45m".
func FormatMinutes(totalMinutes int) string {
	h := totalMinutes / 60
	m := totalMinutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
