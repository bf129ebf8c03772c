package utils

import (
	"time"
)

// BusinessDateLayout is the wire format of business (transaction) dates
const BusinessDateLayout = "2006-01-02"

// BusinessDate truncates t to the start of its UTC calendar day
func BusinessDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseBusinessDate parses a YYYY-MM-DD business date
func ParseBusinessDate(value string) (time.Time, error) {
	t, err := time.Parse(BusinessDateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return BusinessDate(t), nil
}

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// NowUTC returns the current time in UTC
func NowUTC() time.Time {
	return time.Now().UTC()
}
