package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var monthsByName = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	// 15/06/2025, 15-06-2025, 15/06, 15-06
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
	// 29th jul 2025, 5 may
	dayMonthPattern = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+([a-zA-Z]+)\.?(?:\s+(\d{4}))?\b`)
	// jul 29 2025, may 5th
	monthDayPattern = regexp.MustCompile(`\b([a-zA-Z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
)

var relativePhrases = []struct {
	phrase string
	days   int
}{
	{"yesterday", -1},
	{"last week", -7},
	{"today", 0},
	{"tomorrow", 1},
	{"next week", 7},
}

// Date recognizes relative phrases ("today", "yesterday", "last week", ...)
// and explicit calendar-like substrings (DD/MM[/YYYY], DD-MM[-YYYY],
// "<day> <month-name> [year]", "<month-name> <day> [year]") and resolves
// them against now. The matched phrase is returned for residual stripping.
//
// The extractor never produces a date later than today: future results
// (including "tomorrow") are clamped to now. When nothing matches it
// defaults to today with an empty phrase.
func Date(text string, now time.Time) (date string, phrase string) {
	lower := strings.ToLower(text)
	today := now.Format(isoDate)

	for _, rel := range relativePhrases {
		if strings.Contains(lower, rel.phrase) {
			d := now.AddDate(0, 0, rel.days)
			if d.After(now) {
				return today, rel.phrase
			}
			return d.Format(isoDate), rel.phrase
		}
	}

	if m := numericDatePattern.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year = parseYear(m[3], now)
		}
		if d, ok := buildDate(year, month, day); ok {
			return clamp(d, now), m[0]
		}
	}

	for _, m := range dayMonthPattern.FindAllStringSubmatch(lower, -1) {
		if month, ok := monthsByName[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			year := now.Year()
			if m[3] != "" {
				year = parseYear(m[3], now)
			}
			if d, ok := buildDate(year, int(month), day); ok {
				return clamp(d, now), m[0]
			}
		}
	}

	for _, m := range monthDayPattern.FindAllStringSubmatch(lower, -1) {
		if month, ok := monthsByName[m[1]]; ok {
			day, _ := strconv.Atoi(m[2])
			year := now.Year()
			if m[3] != "" {
				year = parseYear(m[3], now)
			}
			if d, ok := buildDate(year, int(month), day); ok {
				return clamp(d, now), m[0]
			}
		}
	}

	return today, ""
}

func parseYear(raw string, now time.Time) int {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return now.Year()
	}
	if year < 100 {
		year += 2000
	}
	return year
}

func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject overflow like 31/02 rolling into March.
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

func clamp(d, now time.Time) string {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(cutoff) {
		return cutoff.Format(isoDate)
	}
	return d.Format(isoDate)
}
