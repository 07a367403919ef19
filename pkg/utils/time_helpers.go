package utils

import (
	"fmt"
	"math"
)

// FormatSecondsShort: "1h 2m 3s"; минуты выводятся, если есть часы, секунды всегда.
func FormatSecondsShort(seconds float64) string {
	total := int64(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	out := ""
	if hours > 0 {
		out += fmt.Sprintf("%dh ", hours)
	}
	if minutes > 0 || hours > 0 {
		out += fmt.Sprintf("%dm ", minutes)
	}
	return out + fmt.Sprintf("%ds", secs)
}
