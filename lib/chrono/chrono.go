// Package chrono resolves the date strings the marketplace renders,
// which come in Jalali form ("۱ تیر ۱۴۰۴", "۱۴۰۴/۰۴/۰۱") or Gregorian
// form ("2025/4/1", "2025 July 5"), to Gregorian dates.
package chrono

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hanane-yh/app-scraper/lib/textutil"
	"github.com/hanane-yh/app-scraper/lib/timezone"

	"github.com/araddon/dateparse"
	ptime "github.com/yaa110/go-persian-calendar"
)

var persianMonths = map[string]int{
	"فروردین":  1,
	"اردیبهشت": 2,
	"خرداد":    3,
	"تیر":      4,
	"مرداد":    5,
	"شهریور":   6,
	"مهر":      7,
	"آبان":     8,
	"آذر":      9,
	"دی":       10,
	"بهمن":     11,
	"اسفند":    12,
}

// ParseDate resolves a date string to midnight Tehran time. Input
// containing Persian script is interpreted on the Jalali calendar.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// the script check has to happen before folding, Persian digits
	// live in the same unicode block as the alphabet
	jalali := textutil.ContainsPersian(raw)
	cleaned := textutil.FoldDigits(raw)

	if parts := strings.Split(cleaned, "/"); len(parts) == 3 {
		year, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		day, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, fmt.Errorf("unrecognized slash date: %q", raw)
		}
		return resolve(year, month, day, jalali)
	}

	if parts := strings.Fields(cleaned); len(parts) == 3 && jalali {
		day, err1 := strconv.Atoi(parts[0])
		month, ok := persianMonths[parts[1]]
		year, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || !ok {
			return time.Time{}, fmt.Errorf("unrecognized jalali date: %q", raw)
		}
		return resolve(year, month, day, true)
	}

	// "2025 July 5" form used by english marketplace pages
	if t, err := time.ParseInLocation("2006 January 2", cleaned, timezone.Location); err == nil {
		return t, nil
	}

	t, err := dateparse.ParseIn(cleaned, timezone.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", raw, err)
	}
	return midnight(t), nil
}

func resolve(year, month, day int, jalali bool) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %04d/%02d/%02d", year, month, day)
	}
	if jalali {
		g := ptime.Date(year, ptime.Month(month), day, 0, 0, 0, 0, timezone.Location).Time()
		return midnight(g), nil
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, timezone.Location), nil
}

func midnight(t time.Time) time.Time {
	t = t.In(timezone.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, timezone.Location)
}
