package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"

	"job-deadline-bot/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS jobs (
		id        BIGSERIAL PRIMARY KEY,
		company   TEXT NOT NULL DEFAULT '',
		position  TEXT NOT NULL DEFAULT '',
		deadline  DATE,
		days_left INTEGER,
		link      TEXT NOT NULL DEFAULT '',
		status    TEXT NOT NULL DEFAULT 'Open',
		salary    TEXT NOT NULL DEFAULT '',
		location  TEXT NOT NULL DEFAULT '',
		added_on  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

var jobColumns = []string{
	"company", "position", "deadline", "days_left", "link",
	"status", "salary", "location", "added_on",
}

type jobRow struct {
	ID       int64         `db:"id"`
	Company  string        `db:"company"`
	Position string        `db:"position"`
	Deadline dbr.NullTime  `db:"deadline"`
	DaysLeft dbr.NullInt64 `db:"days_left"`
	Link     string        `db:"link"`
	Status   string        `db:"status"`
	Salary   string        `db:"salary"`
	Location string        `db:"location"`
	AddedOn  time.Time     `db:"added_on"`
}

// Init creates the jobs table if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.sess.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}

	s.logger.Info("jobs table ready")
	return nil
}

func (s *Store) Append(ctx context.Context, rec *models.JobRecord) error {
	now := s.now()

	status := rec.Status
	if status == "" {
		status = models.StatusOpen
	}

	added := rec.AddedOn
	if added.IsZero() {
		added = now
	}

	var deadline, daysLeft interface{}
	if rec.Deadline != nil {
		deadline = rec.Deadline.Format(models.DeadlineLayout)
		days, _ := rec.DaysLeft(now)
		daysLeft = days
	}

	_, err := s.sess.
		InsertInto("jobs").
		Columns(jobColumns...).
		Values(rec.Company, rec.Position, deadline, daysLeft, rec.Link,
			string(status), rec.Salary, rec.Location, added).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to insert job",
			zap.String("company", rec.Company),
			zap.Error(err),
		)
		return fmt.Errorf("insert job: %w", err)
	}

	return nil
}

// ListAll returns records in insertion order and refreshes days_left.
func (s *Store) ListAll(ctx context.Context) ([]*models.JobRecord, error) {
	today := models.DateOnly(s.now(), s.loc).Format(models.DeadlineLayout)

	_, err := s.sess.
		UpdateBySql("UPDATE jobs SET days_left = deadline - ?::date WHERE deadline IS NOT NULL", today).
		ExecContext(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh days left", zap.Error(err))
	}

	var rows []jobRow
	_, err = s.sess.
		Select("*").
		From("jobs").
		OrderBy("id").
		LoadContext(ctx, &rows)

	if err != nil {
		s.logger.Error("failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	records := make([]*models.JobRecord, 0, len(rows))
	for i := range rows {
		records = append(records, toRecord(&rows[i], i+1, s.loc))
	}

	return records, nil
}

// SetStatus resolves index against insertion order and updates only the
// status column.
func (s *Store) SetStatus(ctx context.Context, index int, status models.Status) (bool, error) {
	if index < 1 {
		return false, models.ErrJobNotFound
	}

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	var id int64
	err = tx.
		Select("id").
		From("jobs").
		OrderBy("id").
		Offset(uint64(index - 1)).
		Limit(1).
		LoadOneContext(ctx, &id)

	if errors.Is(err, dbr.ErrNotFound) {
		return false, models.ErrJobNotFound
	}
	if err != nil {
		return false, fmt.Errorf("resolve job index: %w", err)
	}

	result, err := tx.
		Update("jobs").
		Set("status", string(status)).
		Where("id = ? AND status <> ?", id, string(status)).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update job status",
			zap.Int("index", index),
			zap.Int64("id", id),
			zap.Error(err),
		)
		return false, fmt.Errorf("update job status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}

	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

func toRecord(row *jobRow, index int, loc *time.Location) *models.JobRecord {
	rec := &models.JobRecord{
		Index:    index,
		Company:  row.Company,
		Position: row.Position,
		Link:     row.Link,
		Status:   models.ParseStatus(row.Status),
		Salary:   row.Salary,
		Location: row.Location,
		AddedOn:  row.AddedOn.In(loc),
	}

	if row.Deadline.Valid {
		// DATE carries no zone; keep the calendar day in the user's zone.
		y, m, d := row.Deadline.Time.Date()
		deadline := time.Date(y, m, d, 0, 0, 0, 0, loc)
		rec.Deadline = &deadline
	}

	return rec
}
