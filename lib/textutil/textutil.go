package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseSpace trims surrounding whitespace and folds inner runs of
// whitespace into single spaces.
func CollapseSpace(s string) string {
	s = strings.Trim(s, " \n\t")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// matches anything in the Arabic unicode block, which covers the
// Persian alphabet, Persian digits and Arabic-Indic digits
var persianRegex = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

func ContainsPersian(s string) bool {
	return persianRegex.MatchString(s)
}

// FoldDigits rewrites Persian (U+06F0..U+06F9) and Arabic-Indic
// (U+0660..U+0669) digits into their ASCII equivalents, leaving
// everything else untouched.
func FoldDigits(s string) string {
	return strings.Map(foldDigit, s)
}

func foldDigit(r rune) rune {
	switch {
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	}
	return r
}
