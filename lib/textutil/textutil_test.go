package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldDigits(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected string
	}{
		{"۱۴۰۴/۰۴/۰۱", "1404/04/01"},
		{"۱۰ هزار", "10 هزار"},
		{"٥٢٣", "523"},
		{"215 MB", "215 MB"},
		{"", ""},
	} {
		require.Equal(t, tc.expected, FoldDigits(tc.input), "input: %q", tc.input)
	}
}

func TestContainsPersian(t *testing.T) {
	require.True(t, ContainsPersian("۱ تیر ۱۴۰۴"))
	require.True(t, ContainsPersian("۱۴۰۴/۰۴/۰۱"))
	require.False(t, ContainsPersian("2025/4/1"))
	require.False(t, ContainsPersian("2025 July 5"))
}

func TestCollapseSpace(t *testing.T) {
	require.Equal(t, "some app name", CollapseSpace("  some \n\t app   name "))
	require.Equal(t, "", CollapseSpace(" \n "))
}
