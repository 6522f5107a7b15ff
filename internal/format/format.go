// Package format renders dates, times, and names for terminal output.
package format

import (
	"strings"
	"time"
)

// Date renders a "YYYY-MM-DD" value as e.g. "Nov 5, 2025". An empty or
// unparseable value renders as "No due date".
func Date(dateString string) string {
	if dateString == "" {
		return "No due date"
	}
	d, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		return "No due date"
	}
	return d.Format("Jan 2, 2006")
}

// Time renders an "HH:MM" value as e.g. "3:04 PM". Empty or unparseable
// values render as an empty string.
func Time(timeString string) string {
	if timeString == "" {
		return ""
	}
	t, err := time.Parse("15:04", timeString)
	if err != nil {
		return ""
	}
	return t.Format("3:04 PM")
}

// DateTime combines Date and Time with a separator, e.g.
// "Nov 5, 2025 • 3:04 PM".
func DateTime(dateString, timeString string) string {
	if dateString == "" && timeString == "" {
		return "No due date"
	}
	if dateString == "" {
		return Time(timeString)
	}
	datePart := Date(dateString)
	timePart := Time(timeString)
	if timePart == "" {
		return datePart
	}
	return datePart + " • " + timePart
}

// YMD renders t as "YYYY-MM-DD".
func YMD(t time.Time) string {
	return t.Format("2006-01-02")
}

// Initials returns up to two uppercase initials of a full name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		initials = append(initials, r[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}
