package domain

import "fmt"

// FormatDuration renders a second count as "MM:SS" for the recording timer.
// Negative values render as "00:00"; whole minutes past 99 keep growing the
// minute field rather than wrapping.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
