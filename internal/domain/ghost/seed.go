package ghost

import (
	"fmt"
	"time"
)

// WeeklyKey returns the cohort key for the ISO week containing t, e.g.
// "2024-W04-P10". Cohort membership and skills are stable for that week.
func WeeklyKey(t time.Time, packID int) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d-P%d", year, week, packID)
}

// DailyKey returns the calendar date of t as YYYY-MM-DD. It seeds the daily
// luck generator.
func DailyKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// TestKey returns the key for a single-test cohort: "{date}-{testID}-{packID}".
func TestKey(t time.Time, testID string, packID int) string {
	return fmt.Sprintf("%s-%s-%d", DailyKey(t), testID, packID)
}
