package bazaar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInstalls(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected int64
	}{
		{"۱۰۰ هزار+", 100_000},
		{"۱۰ هزار", 10_000},
		{"5k+", 5_000},
		{"5.5k", 5_500},
		{"۵۰۰+", 500},
		{"1000+", 1000},
		{"-", 0},
		{"", 0},
	} {
		require.Equal(t, tc.expected, ParseInstalls(tc.input), "input: %q", tc.input)
	}
}

func TestParseSizeMB(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected int64
	}{
		{"۲۱۵ مگابایت", 215},
		{"215 MB", 215},
		{"84", 84},
		{"12.7 مگابایت", 12},
		{"1.2 GB", 1200},
		{"", 0},
		{"نامشخص", 0},
	} {
		require.Equal(t, tc.expected, ParseSizeMB(tc.input), "input: %q", tc.input)
	}
}

func TestParseRatingStyle(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected int64
		ok       bool
	}{
		{"width: 80%", 4, true},
		{"width:100%;", 5, true},
		{"width: 70%;", 4, true},
		{"width: ۶۰%", 3, true},
		{"width: 0%", 0, true},
		{"height: 12px", 0, false},
		{"", 0, false},
	} {
		got, ok := ParseRatingStyle(tc.input)
		require.Equal(t, tc.ok, ok, "input: %q", tc.input)
		require.Equal(t, tc.expected, got, "input: %q", tc.input)
	}
}

func TestParseAppRating(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"۴٫۲", 4.2, true},
		{"4.5", 4.5, true},
		{"5", 5, true},
		{"12", 0, false},
		{"خوب", 0, false},
		{"", 0, false},
	} {
		got, ok := ParseAppRating(tc.input)
		require.Equal(t, tc.ok, ok, "input: %q", tc.input)
		require.Equal(t, tc.expected, got, "input: %q", tc.input)
	}
}

func TestPackageFromURL(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected string
	}{
		{"https://cafebazaar.ir/app/com.example.calm", "com.example.calm"},
		{"https://cafebazaar.ir/app/com.example.calm?l=en", "com.example.calm"},
		{"/app/ir.mindful.breath", "ir.mindful.breath"},
		{"https://cafebazaar.ir/lists/some-list", ""},
		{"https://cafebazaar.ir/app/", ""},
		{"", ""},
	} {
		require.Equal(t, tc.expected, PackageFromURL(tc.input), "input: %q", tc.input)
	}
}
