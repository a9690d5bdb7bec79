package models

// Column order is part of the store contract; formatting relies on the
// positional index.
const (
	ColCompany = iota
	ColPosition
	ColDeadline
	ColDaysLeft
	ColLink
	ColStatus
	ColSalary
	ColLocation
	ColAddedOn
	ColumnCount
)

var SheetHeaders = []string{
	"Company",
	"Position",
	"Deadline",
	"Days Left",
	"Link",
	"Status",
	"Salary",
	"Location",
	"Added On",
}

const (
	DeadlineLayout = "2006-01-02"
	AddedOnLayout  = "2006-01-02 15:04"
)
