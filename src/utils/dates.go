package utils

import (
	"fmt"
	"time"
)

// ParseDateRange parses both ends with ShortDashDateLayout and checks ordering.
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(ShortDashDateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid startDate %q: %w", startStr, err)
	}
	endDate, err := time.Parse(ShortDashDateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid endDate %q: %w", endStr, err)
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate must be after startDate")
	}
	return startDate, endDate, nil
}

// TrailingRange returns the `days` full days that end the day before `now`.
func TrailingRange(now time.Time, days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(days - 1))
	return start, end
}
