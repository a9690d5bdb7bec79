package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"job-deadline-bot/internal/models"
)

// first tab of the spreadsheet
const dataSheetID = 0

var (
	headerColor  = &sheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9}
	urgentColor  = &sheets.Color{Red: 1, Green: 0.8, Blue: 0.8}
	soonColor    = &sheets.Color{Red: 1, Green: 1, Blue: 0.8}
	defaultColor = &sheets.Color{Red: 1, Green: 1, Blue: 1}
)

// Init writes and formats the header row unless it is already in place.
func (s *Store) Init(ctx context.Context) error {
	values, err := s.api.GetValues(ctx, headerRange)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	if len(values) > 0 && headerMatches(values[0]) {
		s.logger.Info("sheet already initialized")
		return nil
	}

	header := make([]interface{}, len(models.SheetHeaders))
	for i, h := range models.SheetHeaders {
		header[i] = h
	}

	if err := s.api.UpdateValues(ctx, headerRange, [][]interface{}{header}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: rowRange(0),
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat:      &sheets.TextFormat{Bold: true},
						BackgroundColor: headerColor,
					},
				},
				Fields: "userEnteredFormat(textFormat,backgroundColor)",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:         dataSheetID,
					GridProperties:  &sheets.GridProperties{FrozenRowCount: 1},
					ForceSendFields: []string{"SheetId"},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	if err := s.api.BatchUpdate(ctx, requests); err != nil {
		return fmt.Errorf("format header: %w", err)
	}

	s.logger.Info("sheet initialized")
	return nil
}

func headerMatches(row []interface{}) bool {
	if len(row) != len(models.SheetHeaders) {
		return false
	}
	for i, h := range models.SheetHeaders {
		if cell(row, i) != h {
			return false
		}
	}
	return true
}

func (s *Store) Append(ctx context.Context, rec *models.JobRecord) error {
	row := toRow(rec, s.now(), s.loc)

	if err := s.api.AppendValues(ctx, appendRange, [][]interface{}{row}); err != nil {
		s.logger.Error("failed to append job",
			zap.String("company", rec.Company),
			zap.Error(err),
		)
		return fmt.Errorf("append row: %w", err)
	}

	s.logger.Info("job appended",
		zap.String("company", rec.Company),
		zap.String("position", rec.Position),
	)
	return nil
}

// ListAll returns every non-blank record in row order and refreshes the
// Days Left column and row colors on the way.
func (s *Store) ListAll(ctx context.Context) ([]*models.JobRecord, error) {
	rows, err := s.api.GetValues(ctx, dataRange)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	records := make([]*models.JobRecord, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		records = append(records, fromRow(row, i+1, s.loc))
	}

	s.refresh(ctx, records)

	return records, nil
}

// refresh is best effort; a failed write-back never hides the records.
func (s *Store) refresh(ctx context.Context, records []*models.JobRecord) {
	if len(records) == 0 {
		return
	}

	now := s.now()
	data := make([]*sheets.ValueRange, 0, len(records))
	requests := make([]*sheets.Request, 0, len(records))

	for _, rec := range records {
		data = append(data, &sheets.ValueRange{
			Range:  cellRef(models.ColDaysLeft, rec.Index),
			Values: [][]interface{}{{daysLeftCell(rec, now)}},
		})

		days, ok := rec.DaysLeft(now)
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: rowRange(rec.Index),
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: urgencyColor(models.UrgencyFor(days, ok)),
					},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		})
	}

	if err := s.api.BatchUpdateValues(ctx, data); err != nil {
		s.logger.Warn("failed to refresh days left", zap.Error(err))
	}

	if err := s.api.BatchUpdate(ctx, requests); err != nil {
		s.logger.Warn("failed to recolor rows", zap.Error(err))
	}
}

// SetStatus writes only the status cell of the record. It reports false when
// the record already has the status.
func (s *Store) SetStatus(ctx context.Context, index int, status models.Status) (bool, error) {
	if index < 1 {
		return false, models.ErrJobNotFound
	}

	rows, err := s.api.GetValues(ctx, dataRange)
	if err != nil {
		return false, fmt.Errorf("read rows: %w", err)
	}

	if index > len(rows) || isBlank(rows[index-1]) {
		return false, models.ErrJobNotFound
	}

	current := models.ParseStatus(cell(rows[index-1], models.ColStatus))
	if current == status {
		return false, nil
	}

	rng := cellRef(models.ColStatus, index)
	if err := s.api.UpdateValues(ctx, rng, [][]interface{}{{string(status)}}); err != nil {
		s.logger.Error("failed to update status",
			zap.Int("index", index),
			zap.Error(err),
		)
		return false, fmt.Errorf("update status: %w", err)
	}

	s.logger.Info("job status updated",
		zap.Int("index", index),
		zap.String("status", string(status)),
	)
	return true, nil
}

// rowRange covers one whole sheet row, 0-based.
func rowRange(row int) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          dataSheetID,
		StartRowIndex:    int64(row),
		EndRowIndex:      int64(row + 1),
		StartColumnIndex: 0,
		EndColumnIndex:   models.ColumnCount,
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

func urgencyColor(u models.Urgency) *sheets.Color {
	switch u {
	case models.UrgencyUrgent:
		return urgentColor
	case models.UrgencySoon:
		return soonColor
	default:
		return defaultColor
	}
}
