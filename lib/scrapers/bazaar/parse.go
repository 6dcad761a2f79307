package bazaar

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hanane-yh/app-scraper/lib/textutil"

	"github.com/dustin/go-humanize"
)

// ParseInstalls resolves an install-count display string such as
// "۱۰۰ هزار+" or "5k+" to a number. Unparseable input yields 0, the
// same as an absent cube.
func ParseInstalls(raw string) int64 {
	if raw == "" {
		return 0
	}
	text := strings.ToLower(strings.TrimSpace(textutil.FoldDigits(raw)))
	text = strings.ReplaceAll(text, "+", "")
	// the thousand word and the latin suffix mean the same thing
	text = strings.ReplaceAll(text, "هزار", "k")

	if strings.Contains(text, "k") {
		v, _, err := humanize.ParseSI(strings.ReplaceAll(text, " ", ""))
		if err == nil {
			return int64(v)
		}
	}

	digits := strings.Builder{}
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseSizeMB resolves a size display string such as "۲۱۵ مگابایت" or
// "215 MB" to whole megabytes.
func ParseSizeMB(raw string) int64 {
	if raw == "" {
		return 0
	}
	text := strings.TrimSpace(textutil.FoldDigits(raw))
	bare := strings.ToLower(text)
	bare = strings.ReplaceAll(bare, "مگابایت", "")
	bare = strings.ReplaceAll(bare, "mb", "")
	bare = strings.TrimSpace(bare)

	if f, err := strconv.ParseFloat(bare, 64); err == nil {
		return int64(f)
	}
	// sizes denominated in other units, like "1.2 GB"
	if b, err := humanize.ParseBytes(text); err == nil {
		return int64(b / 1_000_000)
	}
	return 0
}

var percentRegex = regexp.MustCompile(`([0-9.]+)\s*%`)

// ParseRatingStyle resolves the inline width style of a star-fill bar
// ("width: 80%;") to a 0-5 rating.
func ParseRatingStyle(style string) (int64, bool) {
	m := percentRegex.FindStringSubmatch(textutil.FoldDigits(style))
	if len(m) < 2 {
		return 0, false
	}
	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return int64(math.Round(percent / 20)), true
}

// ParseAppRating resolves the marketplace aggregate rating cube,
// which uses the Persian decimal separator ("۴٫۲").
func ParseAppRating(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	text := textutil.FoldDigits(strings.TrimSpace(raw))
	text = strings.ReplaceAll(text, "٫", ".")
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 || v > 5 {
		return 0, false
	}
	return v, true
}
