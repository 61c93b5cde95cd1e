package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ErrEmptyTable is returned when a sheet comes back with no rows at all,
// meaning not even a header is available to work from.
var ErrEmptyTable = errors.New("sheet contains no data")

// Store is the tabular-store contract the pipeline depends on.
type Store interface {
	// ReadTable fetches a whole sheet into a Table, padding or truncating
	// each row to the header width.
	ReadTable(ctx context.Context, sheetName string) (*Table, error)
	// WriteColumns writes only the named columns of t back to the sheet,
	// one ranged update per column, leaving everything else untouched.
	// Columns absent from t are skipped with a warning. An empty column
	// list is a no-op with no network call.
	WriteColumns(ctx context.Context, sheetName string, t *Table, columns []string) error
	// WriteHeader rewrites the full header row (row 1) of the sheet.
	WriteHeader(ctx context.Context, sheetName string, headers []string) error
}

// valuesAPI is the minimal slice of the Sheets values API the store needs.
// It exists so store logic can be tested without a live spreadsheet.
type valuesAPI interface {
	get(ctx context.Context, readRange string) ([][]interface{}, error)
	update(ctx context.Context, writeRange string, values [][]interface{}) error
}

type googleValues struct {
	svc           *gsheets.Service
	spreadsheetID string
	timeout       time.Duration
}

func (g *googleValues) get(ctx context.Context, readRange string) ([][]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) update(ctx context.Context, writeRange string, values [][]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.svc.Spreadsheets.Values.
		Update(g.spreadsheetID, writeRange, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// GoogleStore reads and writes tables in one Google spreadsheet.
type GoogleStore struct {
	values valuesAPI
	logger *zap.Logger
}

// NewGoogleStore creates a store for the given spreadsheet. With an empty
// credentialsFile the client falls back to application default credentials
// (the Cloud Run service account in production).
func NewGoogleStore(ctx context.Context, spreadsheetID, credentialsFile string, timeout time.Duration, logger *zap.Logger) (*GoogleStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(gsheets.SpreadsheetsScope))

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleStore{
		values: &googleValues{svc: svc, spreadsheetID: spreadsheetID, timeout: timeout},
		logger: logger,
	}, nil
}

func (s *GoogleStore) ReadTable(ctx context.Context, sheetName string) (*Table, error) {
	raw, err := s.values.get(ctx, fmt.Sprintf("%s!A:Z", sheetName))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, ErrEmptyTable)
	}

	values := make([][]string, len(raw))
	for i, row := range raw {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = fmt.Sprint(cell)
			}
		}
		values[i] = cells
	}
	return NewTable(values), nil
}

func (s *GoogleStore) WriteColumns(ctx context.Context, sheetName string, t *Table, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	s.logger.Info("updating columns individually",
		zap.String("sheet", sheetName),
		zap.Strings("columns", columns))

	for _, col := range columns {
		idx, ok := t.ColumnIndex(col)
		if !ok {
			s.logger.Warn("column not found in table, skipping",
				zap.String("sheet", sheetName),
				zap.String("column", col))
			continue
		}

		values := make([][]interface{}, len(t.Rows))
		for i, row := range t.Rows {
			values[i] = []interface{}{row[idx]}
		}

		// Data starts at row 2; row 1 is the header.
		writeRange := fmt.Sprintf("%s!%s2", sheetName, columnLetter(idx+1))
		if err := s.values.update(ctx, writeRange, values); err != nil {
			return fmt.Errorf("failed to update column %q in sheet %q: %w", col, sheetName, err)
		}
	}
	return nil
}

func (s *GoogleStore) WriteHeader(ctx context.Context, sheetName string, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := s.values.update(ctx, fmt.Sprintf("%s!1:1", sheetName), [][]interface{}{row}); err != nil {
		return fmt.Errorf("failed to update header of sheet %q: %w", sheetName, err)
	}
	return nil
}
