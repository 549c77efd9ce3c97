// utils/dates.go
package utils

import "time"

// DisplayLayout renders as e.g. "05-03-2025 02:07 PM".
const DisplayLayout = "02-01-2006 03:04 PM"

// FormatDisplayDate formats a stored instant in the server's local zone.
func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DisplayLayout)
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
