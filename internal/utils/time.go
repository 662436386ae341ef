package utils

import (
	"time"
)

const (
	// DateTimeFull renders as "Monday May, 21, 2035 at 9:30PM".
	DateTimeFull = "Monday January, 2, 2006 at 3:04PM"
	// DateTimeMedium renders as "Mon 05, 21, 2035 9:30PM".
	DateTimeMedium = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime formats t for display. format is "full", "medium" or any
// Go layout string; an empty format means medium.
func FormatDateTime(t time.Time, format string) string {
	if t.IsZero() {
		return ""
	}
	switch format {
	case "", "medium":
		format = DateTimeMedium
	case "full":
		format = DateTimeFull
	}
	return t.Local().Format(format)
}
