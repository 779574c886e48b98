package domain

import (
	"time"
)

// DateLayout is the persisted calendar date form.
const DateLayout = "2006-01-02"

// MillisToDate converts epoch milliseconds to a UTC calendar date, dropping the time of day.
func MillisToDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(DateLayout)
}

// DateToMillis converts a calendar date to epoch milliseconds at UTC midnight.
func DateToMillis(date string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}
