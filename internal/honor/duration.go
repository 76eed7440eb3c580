// Package honor computes TA work durations and honor hours.
package honor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ErrInvalidTime reports a clock value that is not HH:MM or HH:MM:SS.
var ErrInvalidTime = errors.New("invalid time of day")

// ParseClock returns the minutes since midnight for an HH:MM or HH:MM:SS
// value. Seconds are validated and then dropped.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
	}

	limits := []int{23, 59, 59}
	fields := make([]int, len(parts))
	for i, part := range parts {
		if len(part) == 0 || len(part) > 2 || strings.Trim(part, "0123456789") != "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, value)
		}
		fields[i] = n
	}

	return fields[0]*60 + fields[1], nil
}

// DurationMinutes returns the minutes from start to end. An end before start
// is read as crossing midnight.
func DurationMinutes(start, end string) (int, error) {
	from, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	to, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	diff := to - from
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff, nil
}

// FormatDuration renders minutes as "H jam M menit".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d jam %d menit", minutes/60, minutes%60)
}

// CalculateDuration formats the elapsed time between two clock values, e.g.
// "08:00" to "10:30" is "2 jam 30 menit" and "23:00" to "01:00" is "2 jam 0 menit".
func CalculateDuration(start, end string) (string, error) {
	minutes, err := DurationMinutes(start, end)
	if err != nil {
		return "", err
	}
	return FormatDuration(minutes), nil
}
