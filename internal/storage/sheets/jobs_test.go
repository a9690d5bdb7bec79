package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/sheets/v4"

	"job-deadline-bot/internal/models"
)

// fakeGrid is an in-memory spreadsheet tab. grid[0] is sheet row 1.
type fakeGrid struct {
	grid      [][]interface{}
	updates   []string
	batches   [][]*sheets.Request
	valueRuns [][]*sheets.ValueRange
	failBatch bool
}

// parseCell splits "F12" into column 5 and row 12. Row is 0 when absent.
func parseCell(ref string) (int, int) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	col := int(ref[0] - 'A')
	row := 0
	if i < len(ref) {
		row, _ = strconv.Atoi(ref[i:])
	}
	return col, row
}

func parseRange(rng string) (startCol, startRow, endCol, endRow int) {
	parts := strings.SplitN(rng, ":", 2)
	startCol, startRow = parseCell(parts[0])
	endCol, endRow = startCol, startRow
	if len(parts) == 2 {
		endCol, endRow = parseCell(parts[1])
	}
	return
}

func (f *fakeGrid) GetValues(_ context.Context, rng string) ([][]interface{}, error) {
	startCol, startRow, endCol, endRow := parseRange(rng)
	if endRow == 0 || endRow > len(f.grid) {
		endRow = len(f.grid)
	}

	var out [][]interface{}
	for r := startRow; r <= endRow; r++ {
		src := f.grid[r-1]
		var row []interface{}
		for c := startCol; c <= endCol && c < len(src); c++ {
			row = append(row, fmt.Sprint(src[c]))
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeGrid) set(col, row int, v interface{}) {
	for len(f.grid) < row {
		f.grid = append(f.grid, nil)
	}
	for len(f.grid[row-1]) <= col {
		f.grid[row-1] = append(f.grid[row-1], "")
	}
	f.grid[row-1][col] = v
}

func (f *fakeGrid) UpdateValues(_ context.Context, rng string, values [][]interface{}) error {
	f.updates = append(f.updates, rng)
	startCol, startRow, _, _ := parseRange(rng)
	for r, row := range values {
		for c, v := range row {
			f.set(startCol+c, startRow+r, v)
		}
	}
	return nil
}

func (f *fakeGrid) AppendValues(_ context.Context, _ string, values [][]interface{}) error {
	for _, row := range values {
		f.grid = append(f.grid, append([]interface{}(nil), row...))
	}
	return nil
}

func (f *fakeGrid) BatchUpdateValues(_ context.Context, data []*sheets.ValueRange) error {
	f.valueRuns = append(f.valueRuns, data)
	for _, vr := range data {
		col, row := parseCell(vr.Range)
		f.set(col, row, vr.Values[0][0])
	}
	return nil
}

func (f *fakeGrid) BatchUpdate(_ context.Context, requests []*sheets.Request) error {
	if f.failBatch {
		return errors.New("quota exceeded")
	}
	f.batches = append(f.batches, requests)
	return nil
}

func header() []interface{} {
	row := make([]interface{}, len(models.SheetHeaders))
	for i, h := range models.SheetHeaders {
		row[i] = h
	}
	return row
}

func dhaka(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)
	return loc
}

func newTestStore(t *testing.T, grid *fakeGrid) *Store {
	t.Helper()
	loc := dhaka(t)
	now := func() time.Time { return time.Date(2026, 2, 10, 9, 30, 0, 0, loc) }
	return newStore(grid, loc, now, zap.NewNop())
}

func deadline(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.ParseInLocation(models.DeadlineLayout, s, dhaka(t))
	require.NoError(t, err)
	return &d
}

func TestInitWritesHeaderOnce(t *testing.T) {
	grid := &fakeGrid{}
	store := newTestStore(t, grid)

	require.NoError(t, store.Init(context.Background()))
	require.Len(t, grid.grid, 1)
	assert.Equal(t, models.SheetHeaders[0], grid.grid[0][0])
	assert.Equal(t, []string{headerRange}, grid.updates)
	require.Len(t, grid.batches, 1)
	assert.NotNil(t, grid.batches[0][1].UpdateSheetProperties)

	require.NoError(t, store.Init(context.Background()))
	assert.Len(t, grid.updates, 1)
	assert.Len(t, grid.batches, 1)
}

func TestInitRewritesWrongHeader(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{{"Company", "Role"}}}
	store := newTestStore(t, grid)

	require.NoError(t, store.Init(context.Background()))
	assert.Equal(t, "Position", grid.grid[0][1])
}

func TestAppendAndListAll(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{header()}}
	store := newTestStore(t, grid)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, &models.JobRecord{
		Company:  "Acme",
		Position: "Go Developer",
		Deadline: deadline(t, "2026-02-12"),
		Link:     "https://example.com/1",
		Salary:   "BDT 50,000",
		Location: "Dhaka",
	}))
	require.NoError(t, store.Append(ctx, &models.JobRecord{
		Company:  "Globex",
		Position: "SRE",
		Link:     "https://example.com/2",
	}))

	row := grid.grid[1]
	assert.Equal(t, "2026-02-12", row[models.ColDeadline])
	assert.Equal(t, 2, row[models.ColDaysLeft])
	assert.Equal(t, "Open", row[models.ColStatus])
	assert.Equal(t, "2026-02-10 09:30", row[models.ColAddedOn])
	assert.Equal(t, "", grid.grid[2][models.ColDaysLeft])

	records, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].Index)
	assert.Equal(t, "Acme", records[0].Company)
	assert.Equal(t, models.StatusOpen, records[0].Status)
	require.NotNil(t, records[0].Deadline)
	days, ok := records[0].DaysLeft(time.Date(2026, 2, 10, 9, 30, 0, 0, dhaka(t)))
	assert.True(t, ok)
	assert.Equal(t, 2, days)

	assert.Equal(t, 2, records[1].Index)
	assert.Nil(t, records[1].Deadline)
}

func TestListAllRefreshesDaysLeftAndColors(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{
		header(),
		{"Acme", "Dev", "2026-02-11", "99", "https://a", "Open"},
		{"Globex", "SRE", "2026-02-15", "99", "https://b", "Applied"},
		{"Initech", "QA", "2026-03-30", "99", "https://c", "Open"},
		{"Umbrella", "PM", "", "", "https://d", "Open"},
	}}
	store := newTestStore(t, grid)

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, models.StatusApplied, records[1].Status)

	require.Len(t, grid.valueRuns, 1)
	assert.Equal(t, "D2", grid.valueRuns[0][0].Range)
	assert.Equal(t, 1, grid.grid[1][models.ColDaysLeft])
	assert.Equal(t, 5, grid.grid[2][models.ColDaysLeft])
	assert.Equal(t, 48, grid.grid[3][models.ColDaysLeft])
	assert.Equal(t, "", grid.grid[4][models.ColDaysLeft])

	require.Len(t, grid.batches, 1)
	colors := grid.batches[0]
	require.Len(t, colors, 4)
	assert.Equal(t, urgentColor, colors[0].RepeatCell.Cell.UserEnteredFormat.BackgroundColor)
	assert.Equal(t, soonColor, colors[1].RepeatCell.Cell.UserEnteredFormat.BackgroundColor)
	assert.Equal(t, defaultColor, colors[2].RepeatCell.Cell.UserEnteredFormat.BackgroundColor)
	assert.Equal(t, defaultColor, colors[3].RepeatCell.Cell.UserEnteredFormat.BackgroundColor)
	assert.Equal(t, int64(1), colors[0].RepeatCell.Range.StartRowIndex)
	assert.Equal(t, int64(2), colors[0].RepeatCell.Range.EndRowIndex)
}

func TestListAllToleratesShortAndBlankRows(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{
		header(),
		{"Acme"},
		{},
		{"Globex", "SRE", "not a date", "", "", "applied"},
	}}
	store := newTestStore(t, grid)

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].Index)
	assert.Equal(t, models.StatusOpen, records[0].Status)
	assert.Equal(t, 3, records[1].Index)
	assert.Nil(t, records[1].Deadline)
	assert.Equal(t, models.StatusApplied, records[1].Status)
}

func TestListAllIgnoresRefreshFailure(t *testing.T) {
	grid := &fakeGrid{
		grid:      [][]interface{}{header(), {"Acme", "Dev", "2026-02-11"}},
		failBatch: true,
	}
	store := newTestStore(t, grid)

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListAllEmpty(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{header()}}
	store := newTestStore(t, grid)

	records, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, grid.batches)
}

func TestSetStatusWritesOnlyStatusCell(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{
		header(),
		{"Acme", "Dev", "2026-02-11", "1", "https://a", "Open", "", "", "2026-02-01 10:00"},
		{"Globex", "SRE", "2026-02-15", "5", "https://b", "Open", "", "", "2026-02-01 11:00"},
	}}
	before := fmt.Sprint(grid.grid)
	store := newTestStore(t, grid)

	changed, err := store.SetStatus(context.Background(), 1, models.StatusApplied)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"F2"}, grid.updates)
	assert.Equal(t, "Applied", grid.grid[1][models.ColStatus])
	assert.Equal(t, "Open", grid.grid[2][models.ColStatus])

	grid.grid[1][models.ColStatus] = "Open"
	assert.Equal(t, before, fmt.Sprint(grid.grid))
	grid.grid[1][models.ColStatus] = "Applied"

	changed, err = store.SetStatus(context.Background(), 1, models.StatusApplied)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, grid.updates, 1)
}

func TestSetStatusOutOfRange(t *testing.T) {
	grid := &fakeGrid{grid: [][]interface{}{
		header(),
		{"Acme", "Dev", "2026-02-11", "1", "https://a", "Open"},
	}}
	store := newTestStore(t, grid)

	for _, index := range []int{0, -1, 2, 99} {
		_, err := store.SetStatus(context.Background(), index, models.StatusApplied)
		assert.ErrorIs(t, err, models.ErrJobNotFound, "index %d", index)
	}
	assert.Empty(t, grid.updates)
}

func TestCellRef(t *testing.T) {
	assert.Equal(t, "F2", cellRef(models.ColStatus, 1))
	assert.Equal(t, "D11", cellRef(models.ColDaysLeft, 10))
}
