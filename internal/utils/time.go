package utils

import (
	"fmt"
	"time"
)

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// MonthKey formats a month bucket for analytics breakdowns ("2024-07").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayBucket formats the day component of click dedupe cache keys.
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func FormatDuration(duration time.Duration) string {
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

func AccountAgeDays(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
