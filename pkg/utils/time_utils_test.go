package utils

import (
	"testing"
	"time"
)

func TestBusinessDate(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Midday UTC",
			input:    time.Date(2024, 3, 15, 13, 45, 10, 99, time.UTC),
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Offset zone crossing midnight",
			input:    time.Date(2024, 3, 16, 2, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BusinessDate(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("BusinessDate(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseBusinessDate(t *testing.T) {
	got, err := ParseBusinessDate("2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.January || got.Day() != 31 {
		t.Errorf("ParseBusinessDate returned %v", got)
	}

	for _, bad := range []string{"", "31-01-2024", "2024-13-01", "2024-01-31T00:00:00Z"} {
		if _, err := ParseBusinessDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := FormatTime(ts); got != "2024-01-02T03:04:05Z" {
		t.Errorf("FormatTime = %s", got)
	}
}
