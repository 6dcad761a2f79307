package chrono

import (
	"testing"
	"time"

	"github.com/hanane-yh/app-scraper/lib/timezone"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, timezone.Location)
}

func TestParseDate(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected time.Time
	}{
		// jalali, month name
		{"۱۴ مرداد ۱۴۰۲", date(2023, time.August, 5)},
		{"۱ تیر ۱۴۰۴", date(2025, time.June, 22)},
		// jalali, numeric
		{"۱۴۰۴/۰۴/۰۱", date(2025, time.June, 22)},
		// gregorian
		{"2025/4/1", date(2025, time.April, 1)},
		{"2025 July 5", date(2025, time.July, 5)},
		{"July 5, 2025", date(2025, time.July, 5)},
	} {
		got, err := ParseDate(tc.input)
		require.NoError(t, err, "input: %q", tc.input)
		require.True(t, tc.expected.Equal(got), "input: %q, expected %s, got %s", tc.input, tc.expected, got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "تیر", "یک روز پیش", "not a date"} {
		_, err := ParseDate(input)
		require.Error(t, err, "input: %q", input)
	}
}
