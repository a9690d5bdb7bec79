package extractor

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var errEmptyDate = errors.New("empty date")

// Postings are written day-first, so the explicit layouts are tried before
// handing the string to the general parser.
var dateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 January, 2006",
	"2 Jan 2006",
	"2 Jan, 2006",
}

var (
	ordinalSuffix = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)
	spaces        = regexp.MustCompile(`\s+`)
)

// ParseDate normalizes a captured date string to midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;")
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = spaces.ReplaceAllString(s, " ")
	if s == "" {
		return time.Time{}, errEmptyDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return dateOnly(t, loc), nil
		}
	}

	t, err := dateparse.ParseIn(s, loc, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, err
	}
	return dateOnly(t, loc), nil
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

var bengaliDigits = strings.NewReplacer(
	"০", "0", "১", "1", "২", "2", "৩", "3", "৪", "4",
	"৫", "5", "৬", "6", "৭", "7", "৮", "8", "৯", "9",
)

// normalizeText lower-cases text and maps Bengali digits to ASCII so the
// patterns only need to know one digit set.
func normalizeText(text string) string {
	return bengaliDigits.Replace(strings.ToLower(text))
}
