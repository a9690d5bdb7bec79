package models

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusOpen    Status = "Open"
	StatusApplied Status = "Applied"
)

// ParseStatus treats anything that is not "applied" as open, so manual
// edits in the store never produce a third state.
func ParseStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), string(StatusApplied)) {
		return StatusApplied
	}
	return StatusOpen
}

var ErrJobNotFound = errors.New("job not found")

// JobRecord is one tracked application.
type JobRecord struct {
	// Index is the 1-based position in store order. It is recomputed on
	// every read and shifts if rows are removed by hand.
	Index    int
	Company  string
	Position string
	Deadline *time.Time
	Link     string
	Status   Status
	Salary   string
	Location string
	AddedOn  time.Time
}

func (j *JobRecord) IsApplied() bool {
	return j.Status == StatusApplied
}

// DaysLeft returns deadline minus today in calendar days, taken in the
// deadline's zone. The bool is false when the record has no deadline.
func (j *JobRecord) DaysLeft(now time.Time) (int, bool) {
	if j.Deadline == nil {
		return 0, false
	}
	return DaysBetween(now, *j.Deadline), true
}

// DaysBetween counts calendar days from `from` to `to`, ignoring the time of
// day. Both dates are read in to's location.
func DaysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DateOnly truncates t to midnight in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
