package sheets

import (
	"fmt"
	"strings"
	"time"

	"job-deadline-bot/internal/models"
)

const (
	headerRange = "A1:I1"
	dataRange   = "A2:I"
	appendRange = "A:I"
)

// cellRef returns the A1 reference of a single cell for the record at index.
func cellRef(col, index int) string {
	return fmt.Sprintf("%c%d", 'A'+col, index+1)
}

func toRow(rec *models.JobRecord, now time.Time, loc *time.Location) []interface{} {
	row := make([]interface{}, models.ColumnCount)

	row[models.ColCompany] = rec.Company
	row[models.ColPosition] = rec.Position
	row[models.ColDeadline] = ""
	if rec.Deadline != nil {
		row[models.ColDeadline] = rec.Deadline.Format(models.DeadlineLayout)
	}
	row[models.ColDaysLeft] = daysLeftCell(rec, now)
	row[models.ColLink] = rec.Link

	status := rec.Status
	if status == "" {
		status = models.StatusOpen
	}
	row[models.ColStatus] = string(status)

	row[models.ColSalary] = rec.Salary
	row[models.ColLocation] = rec.Location

	added := rec.AddedOn
	if added.IsZero() {
		added = now
	}
	row[models.ColAddedOn] = added.In(loc).Format(models.AddedOnLayout)

	return row
}

func cell(row []interface{}, col int) string {
	if col >= len(row) || row[col] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}

func isBlank(row []interface{}) bool {
	for i := range row {
		if cell(row, i) != "" {
			return false
		}
	}
	return true
}

// fromRow tolerates short rows and hand-edited cells. Unparsable dates are
// treated as absent.
func fromRow(row []interface{}, index int, loc *time.Location) *models.JobRecord {
	rec := &models.JobRecord{
		Index:    index,
		Company:  cell(row, models.ColCompany),
		Position: cell(row, models.ColPosition),
		Link:     cell(row, models.ColLink),
		Status:   models.ParseStatus(cell(row, models.ColStatus)),
		Salary:   cell(row, models.ColSalary),
		Location: cell(row, models.ColLocation),
	}

	if s := cell(row, models.ColDeadline); s != "" {
		if d, err := time.ParseInLocation(models.DeadlineLayout, s, loc); err == nil {
			rec.Deadline = &d
		}
	}

	if s := cell(row, models.ColAddedOn); s != "" {
		if t, err := time.ParseInLocation(models.AddedOnLayout, s, loc); err == nil {
			rec.AddedOn = t
		}
	}

	return rec
}

func daysLeftCell(rec *models.JobRecord, now time.Time) interface{} {
	days, ok := rec.DaysLeft(now)
	if !ok {
		return ""
	}
	return days
}
