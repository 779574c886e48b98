package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as a UTC RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// NullableString returns nil for a nil pointer so the column is stored as NULL
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
