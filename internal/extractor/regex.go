package extractor

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	numericDate = `(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`
	dayFirst    = `(\d{1,2}(?:st|nd|rd|th)?\s+[a-z]+,?\s+\d{4})`
	monthFirst  = `([a-z]+\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`
)

// deadlinePatterns run against lower-cased text in order. The first pattern
// whose first match parses wins; later patterns are not consulted even when
// they would match a more specific label.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`deadline[:\s]+` + numericDate),
	regexp.MustCompile(`apply\s+by[:\s]+` + dayFirst),
	regexp.MustCompile(`apply\s+by[:\s]+` + monthFirst),
	regexp.MustCompile(`last\s+date(?:\s+of\s+application)?[:\s]+` + numericDate),
	regexp.MustCompile(`application\s+deadline[:\s]+` + numericDate),
	regexp.MustCompile(`applications?\s+close[sd]?\s+on[:\s]+` + dayFirst),
	regexp.MustCompile(`close\s+date[:\s]+` + numericDate),
	regexp.MustCompile(`শেষ\s+তারিখ[:\s]+` + numericDate),
	regexp.MustCompile(`due\s+date[:\s]+` + numericDate),
	regexp.MustCompile(`expires[:\s]+` + numericDate),
	regexp.MustCompile(`valid\s+(?:till|until)[:\s]+` + numericDate),
	regexp.MustCompile(`deadline[:\s]+` + monthFirst),
	regexp.MustCompile(`deadline[:\s]+` + dayFirst),
	regexp.MustCompile(`(?:valid\s+(?:till|until)|last\s+date)[:\s]+` + monthFirst),
	regexp.MustCompile(`(?:valid\s+(?:till|until)|last\s+date)[:\s]+` + dayFirst),
}

const monthNames = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*`

// standalonePatterns catch unlabeled dates. Only future dates count since
// postings are full of publish dates.
var standalonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})\b`),
	regexp.MustCompile(`\b(\d{1,2}\s+` + monthNames + `,?\s+\d{4})\b`),
	regexp.MustCompile(`\b(` + monthNames + `\s+\d{1,2},?\s+\d{4})\b`),
}

// RegexStrategy finds the deadline with date patterns and the other fields
// with "Label: value" heuristics.
type RegexStrategy struct {
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewRegexStrategy(loc *time.Location, now func() time.Time, logger *zap.Logger) *RegexStrategy {
	if now == nil {
		now = time.Now
	}
	return &RegexStrategy{
		loc:    loc,
		now:    now,
		logger: logger,
	}
}

func (r *RegexStrategy) Name() string {
	return "regex"
}

func (r *RegexStrategy) Extract(_ context.Context, text string) (Fields, bool) {
	fields := extractLabeled(text)
	fields.Deadline = r.FindDeadline(text)
	return fields, fields.Deadline != nil
}

// FindDeadline returns nil when no pattern yields a parsable date.
func (r *RegexStrategy) FindDeadline(text string) *time.Time {
	lower := normalizeText(text)

	for _, p := range deadlinePatterns {
		m := p.FindStringSubmatch(lower)
		if m == nil {
			continue
		}

		d, err := ParseDate(m[1], r.loc)
		if err != nil {
			r.logger.Debug("discarding unparsable deadline match",
				zap.String("match", m[1]),
				zap.Error(err),
			)
			continue
		}

		r.logger.Debug("deadline matched",
			zap.String("pattern", p.String()),
			zap.String("match", m[1]),
		)
		return &d
	}

	today := dateOnly(r.now().In(r.loc), r.loc)
	for _, p := range standalonePatterns {
		for _, m := range p.FindAllStringSubmatch(lower, -1) {
			d, err := ParseDate(m[1], r.loc)
			if err != nil || !d.After(today) {
				continue
			}

			r.logger.Debug("standalone future date matched", zap.String("match", m[1]))
			return &d
		}
	}

	return nil
}

var (
	companyLabel  = regexp.MustCompile(`(?im)^[ \t•*-]*(?:company(?:\s+name)?|organi[sz]ation|employer)[ \t]*:[ \t]*(.+)$`)
	positionLabel = regexp.MustCompile(`(?im)^[ \t•*-]*(?:position|job\s+title|role|designation|vacancy)[ \t]*:[ \t]*(.+)$`)
	locationLabel = regexp.MustCompile(`(?im)^[ \t•*-]*(?:location|job\s+location|workplace|office\s+location)[ \t]*:[ \t]*(.+)$`)
	salaryLabel   = regexp.MustCompile(`(?i)\b(?:salary|compensation|pay)(?:\s+range)?[ \t]*:[ \t]*([^\n]+)`)
)

const (
	amount      = `\d[\d,]*(?:\.\d+)?k?`
	amountRange = amount + `(?:\s*(?:-|–|to)\s*` + amount + `)?`
	periodTail  = `(?:\s*\((?:monthly|negotiable)\)|\s+per\s+month|\s*/\s*month|\+)?`
)

// Currency must be present; bare number ranges are ages, years or hours
// far more often than pay.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:\btk\.?|\bbdt|৳|\busd|\$)\s*` + amountRange + periodTail),
	regexp.MustCompile(`(?i)` + amount + `\s*(?:-|–|to)\s*` + amount + `\s*(?:bdt|tk|usd)\b(?:\s*/\s*month|\s+per\s+month)?`),
}

const maxFieldLen = 120

func extractLabeled(text string) Fields {
	text = bengaliDigits.Replace(strings.ReplaceAll(text, "\r", ""))

	return Fields{
		Company:  firstGroup(companyLabel, text),
		Position: firstGroup(positionLabel, text),
		Location: firstGroup(locationLabel, text),
		Salary:   ExtractSalary(text),
	}
}

// ExtractSalary prefers an explicit "Salary:" label and falls back to the
// first currency-anchored amount.
func ExtractSalary(text string) string {
	if s := firstGroup(salaryLabel, text); s != "" {
		return s
	}

	for _, p := range salaryPatterns {
		if m := p.FindString(text); m != "" {
			return cleanValue(m)
		}
	}

	return ""
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return cleanValue(m[1])
}

func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, " .;,|")
	s = spaces.ReplaceAllString(s, " ")

	if r := []rune(s); len(r) > maxFieldLen {
		s = strings.TrimSpace(string(r[:maxFieldLen]))
	}

	return s
}
