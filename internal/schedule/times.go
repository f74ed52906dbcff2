package schedule

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// Hebrew calendar labels, Sunday first.
var hebrewWeekdays = [7]string{
	"יום ראשון", "יום שני", "יום שלישי", "יום רביעי", "יום חמישי", "יום שישי", "שבת",
}

var hebrewMonths = [12]string{
	"ינואר", "פברואר", "מרץ", "אפריל", "מאי", "יוני",
	"יולי", "אוגוסט", "ספטמבר", "אוקטובר", "נובמבר", "דצמבר",
}

// FormatDate converts an ISO date (YYYY-MM-DD) to its Hebrew display label,
// e.g. "יום שישי, 29 באוגוסט". Unparseable input is returned as-is.
func FormatDate(iso string) string {
	t, err := time.Parse(isoDate, iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%s, %d ב%s", hebrewWeekdays[t.Weekday()], t.Day(), hebrewMonths[t.Month()-1])
}

// FormatTime normalizes a time-of-day string to HH:MM display form. Backend
// time columns come back as HH:MM:SS; form values are already HH:MM.
func FormatTime(v string) string {
	if len(v) >= 5 {
		if _, ok := parseMinutes(v[:5]); ok {
			return v[:5]
		}
	}
	return v
}

// Today returns the current calendar date in ISO form, local wall clock.
func Today() string {
	return time.Now().Format(isoDate)
}

// DateRange returns n consecutive ISO dates starting at from. An unparseable
// from yields nil.
func DateRange(from string, n int) []string {
	t, err := time.Parse(isoDate, from)
	if err != nil || n <= 0 {
		return nil
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, t.AddDate(0, 0, i).Format(isoDate))
	}
	return dates
}
