// Package sheets stores job records as rows of a Google spreadsheet. Row 1
// holds the headers; record n lives on row n+1.
package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// sheetAPI is the part of the Sheets service the store needs.
type sheetAPI interface {
	GetValues(ctx context.Context, rng string) ([][]interface{}, error)
	UpdateValues(ctx context.Context, rng string, values [][]interface{}) error
	AppendValues(ctx context.Context, rng string, values [][]interface{}) error
	BatchUpdateValues(ctx context.Context, data []*sheets.ValueRange) error
	BatchUpdate(ctx context.Context, requests []*sheets.Request) error
}

type serviceAPI struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (a *serviceAPI) GetValues(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (a *serviceAPI) UpdateValues(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := a.svc.Spreadsheets.Values.Update(a.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (a *serviceAPI) AppendValues(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := a.svc.Spreadsheets.Values.Append(a.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (a *serviceAPI) BatchUpdateValues(ctx context.Context, data []*sheets.ValueRange) error {
	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	_, err := a.svc.Spreadsheets.Values.BatchUpdate(a.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (a *serviceAPI) BatchUpdate(ctx context.Context, requests []*sheets.Request) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	_, err := a.svc.Spreadsheets.BatchUpdate(a.spreadsheetID, req).Context(ctx).Do()
	return err
}

type Store struct {
	api    sheetAPI
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// New authenticates with a service account credentials file.
func New(ctx context.Context, credentialsFile, spreadsheetID string, loc *time.Location, logger *zap.Logger) (*Store, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger.Info("google sheets client created", zap.String("spreadsheet_id", spreadsheetID))

	return newStore(&serviceAPI{svc: svc, spreadsheetID: spreadsheetID}, loc, time.Now, logger), nil
}

func newStore(api sheetAPI, loc *time.Location, now func() time.Time, logger *zap.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		api:    api,
		loc:    loc,
		now:    now,
		logger: logger,
	}
}
