package extractor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRegex(t *testing.T, now time.Time) *RegexStrategy {
	t.Helper()
	return NewRegexStrategy(dhaka(t), func() time.Time { return now }, zap.NewNop())
}

func TestFindDeadline(t *testing.T) {
	r := newRegex(t, time.Date(2026, 1, 10, 9, 0, 0, 0, dhaka(t)))

	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash", "Deadline: 15/02/2026", "2026-02-15"},
		{"upper case label", "DEADLINE: 15/02/2026", "2026-02-15"},
		{"dots", "Application deadline: 15.02.2026", "2026-02-15"},
		{"dashes", "Last date: 15-02-2026", "2026-02-15"},
		{"last date of application", "Last date of application: 5/3/2026", "2026-03-05"},
		{"apply by month first", "Apply by: February 15, 2026", "2026-02-15"},
		{"apply by day first", "Apply by 15 February 2026", "2026-02-15"},
		{"applications close", "Applications close on 1st March 2026", "2026-03-01"},
		{"close date", "Close date: 28/02/2026", "2026-02-28"},
		{"due date", "Due date: 5/3/2026", "2026-03-05"},
		{"expires", "Expires: 01.04.2026", "2026-04-01"},
		{"valid till", "Valid till: 20/03/2026", "2026-03-20"},
		{"valid until two digit year", "Valid until 20/03/26", "2026-03-20"},
		{"textual deadline", "Deadline: February 15, 2026", "2026-02-15"},
		{"textual deadline short month", "deadline 15 feb 2026", "2026-02-15"},
		{"bengali label", "শেষ তারিখ: 15/02/2026", "2026-02-15"},
		{"bengali label and digits", "আবেদনের শেষ তারিখ: ১৫/০২/২০২৬", "2026-02-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.FindDeadline(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestFindDeadlineFirstMatchWins(t *testing.T) {
	r := newRegex(t, time.Date(2026, 1, 10, 9, 0, 0, 0, dhaka(t)))

	// The first positional "deadline" is used even though the second one is
	// the application deadline.
	got := r.FindDeadline("Interview deadline: 01/03/2026\nApplication deadline: 15/02/2026")
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-01", got.Format("2006-01-02"))

	// Pattern order decides across labels, not text position.
	got = r.FindDeadline("Apply by: February 20, 2026. Deadline: 15/02/2026")
	require.NotNil(t, got)
	assert.Equal(t, "2026-02-15", got.Format("2006-01-02"))
}

func TestFindDeadlineSkipsUnparsableMatch(t *testing.T) {
	r := newRegex(t, time.Date(2026, 1, 10, 9, 0, 0, 0, dhaka(t)))

	got := r.FindDeadline("Deadline: 45/13/2026\nValid till: 10/03/2026")
	require.NotNil(t, got)
	assert.Equal(t, "2026-03-10", got.Format("2006-01-02"))
}

func TestFindDeadlineStandaloneFutureOnly(t *testing.T) {
	r := newRegex(t, time.Date(2026, 1, 10, 9, 0, 0, 0, dhaka(t)))

	got := r.FindDeadline("Posted 01/12/2025. Interviews start 10/02/2026.")
	require.NotNil(t, got)
	assert.Equal(t, "2026-02-10", got.Format("2006-01-02"))

	assert.Nil(t, r.FindDeadline("Posted on March 3, 2025 and updated 5 June 2025"))
}

func TestFindDeadlineNoMatch(t *testing.T) {
	r := newRegex(t, time.Date(2026, 1, 10, 9, 0, 0, 0, dhaka(t)))

	assert.Nil(t, r.FindDeadline("We are hiring a React developer. Send your CV."))
	assert.Nil(t, r.FindDeadline(""))
}

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Salary\n• Tk. 22000 - 30000 (Monthly)", "Tk. 22000 - 30000 (Monthly)"},
		{"Tk. 22,000 - 30,000 per month", "Tk. 22,000 - 30,000 per month"},
		{"৳ 22,000 - 30,000 (Monthly)", "৳ 22,000 - 30,000 (Monthly)"},
		{"22k - 30k BDT/month", "22k - 30k BDT/month"},
		{"BDT 25,000 - 35,000 (Negotiable)", "BDT 25,000 - 35,000 (Negotiable)"},
		{"Tk. 27,000 - 35,000", "Tk. 27,000 - 35,000"},
		{"Salary: Negotiable", "Negotiable"},
		{"Monthly Salary: BDT 50,000", "BDT 50,000"},
		{"Pay: $800-1000/month", "$800-1000/month"},
		{"Salary: 25,000 to 35,000 BDT", "25,000 to 35,000 BDT"},
		{"Tk 50000+", "Tk 50000+"},
		{"30,000 to 40,000 BDT", "30,000 to 40,000 BDT"},
		{"Salary: As per company policy", "As per company policy"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSalary(tt.text))
		})
	}
}

func TestExtractSalaryNoFalsePositives(t *testing.T) {
	for _, text := range []string{
		"No salary mentioned in this text",
		"Experience: 2-3 years",
		"Age: 25-30",
		"Working hours: 9-5",
		"Team size: 10-15 people",
		"30,000-40,000",
	} {
		t.Run(text, func(t *testing.T) {
			assert.Empty(t, ExtractSalary(text))
		})
	}
}

func TestParseDate(t *testing.T) {
	loc := dhaka(t)

	for in, want := range map[string]string{
		"15/02/2026":         "2026-02-15",
		"15.02.2026":         "2026-02-15",
		"february 15, 2026":  "2026-02-15",
		"Feb 15 2026":        "2026-02-15",
		"15th february 2026": "2026-02-15",
		"2026-02-15":         "2026-02-15",
	} {
		got, err := ParseDate(in, loc)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.Format("2006-01-02"), in)
		assert.Equal(t, 0, got.Hour(), in)
		assert.Equal(t, loc.String(), got.Location().String(), in)
	}

	_, err := ParseDate("   ", loc)
	assert.Error(t, err)
}
