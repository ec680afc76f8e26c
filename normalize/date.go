package normalize

import (
	"strconv"
	"strings"
	"time"
)

// MinDate is returned for missing or unparsable dates so that they sort
// first in ascending order.
var MinDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var months = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		months[name] = m
		months[name[:3]] = m
	}
	months["sept"] = time.September
}

// fallbackLayouts are tried when a value is not in DD-Mon-YYYY form.
var fallbackLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1/2/06",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2 Jan 2006 15:04",
	time.RFC3339,
}

// clockLayouts are accepted after the year of a DD-Mon-YYYY date.
var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// ParseDate parses the feeds' DD-Mon-YYYY or DD-Mon-YY dates (a two-digit
// year means 20YY), optionally followed by a time of day. Other common
// layouts, including unpadded US dates as exported by spreadsheets, are
// accepted as a fallback. Empty or unparsable values yield MinDate.
func ParseDate(s string) time.Time {
	s = Text(s)
	if s == "" {
		return MinDate
	}

	if parts := strings.Split(s, "-"); len(parts) >= 3 {
		if t, ok := parseDayMonthYear(parts[0], parts[1], parts[2]); ok {
			return t
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return MinDate
}

func parseDayMonthYear(dayText, monthText, yearText string) (time.Time, bool) {
	day, err := strconv.Atoi(strings.TrimSpace(dayText))
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}

	month, ok := months[strings.ToLower(strings.TrimSpace(monthText))]
	if !ok {
		return time.Time{}, false
	}

	yearText, clockText, _ := strings.Cut(strings.TrimSpace(yearText), " ")
	if len(yearText) == 2 {
		yearText = "20" + yearText
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		// 31-Feb-2024 would otherwise roll over into March.
		return time.Time{}, false
	}

	if clockText = strings.TrimSpace(clockText); clockText != "" {
		clock, ok := parseClock(clockText)
		if !ok {
			return time.Time{}, false
		}
		t = t.Add(clock)
	}
	return t, true
}

// parseClock returns the offset of a time of day from midnight.
func parseClock(s string) (time.Duration, bool) {
	for _, layout := range clockLayouts {
		if c, err := time.Parse(layout, s); err == nil {
			return c.Sub(time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)), true
		}
	}
	return 0, false
}

// MonthYearToDate parses a "MonthName YYYY" bucket label into the first of
// that month. Malformed labels yield MinDate.
func MonthYearToDate(label string) time.Time {
	parts := strings.Fields(label)
	if len(parts) < 2 {
		return MinDate
	}

	month, ok := months[strings.ToLower(parts[0])]
	if !ok {
		return MinDate
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return MinDate
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}
