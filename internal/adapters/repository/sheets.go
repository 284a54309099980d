package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/okian/pickup/internal/domain/model"
	"github.com/okian/pickup/pkg/metrics"
)

// Sheets defaults.
const (
	defaultWorksheet = "Ratings"
	valueInputRaw    = "RAW"
	insertRows       = "INSERT_ROWS"
)

// sheetHeader is written as row 1 when the worksheet is empty.
var sheetHeader = []interface{}{"Player", "Position", "User", "Rating"}

// sheetValues is the slice of the Sheets values API used by SheetsStore.
type sheetValues interface {
	Get(ctx context.Context, rng string) ([][]interface{}, error)
	Update(ctx context.Context, rng string, values [][]interface{}) error
	Append(ctx context.Context, rng string, values [][]interface{}) error
}

// googleValues implements sheetValues on top of the sheets/v4 client.
type googleValues struct {
	svc           *sheets.Service
	spreadsheetID string
}

func (g *googleValues) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, describeSheetsError(err)
	}
	return resp.Values, nil
}

func (g *googleValues) Update(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	return describeSheetsError(err)
}

func (g *googleValues) Append(ctx context.Context, rng string, values [][]interface{}) error {
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rng, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	return describeSheetsError(err)
}

func describeSheetsError(err error) error {
	if err == nil {
		return nil
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("spreadsheet or worksheet not found: %w", err)
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("access to spreadsheet denied: %w", err)
		}
	}
	return err
}

// SheetsOption applies a configuration option to the SheetsStore.
type SheetsOption func(*SheetsStore)

// WithWorksheet sets the worksheet (tab) holding the rating rows.
func WithWorksheet(name string) SheetsOption {
	return func(s *SheetsStore) {
		if strings.TrimSpace(name) != "" {
			s.worksheet = name
		}
	}
}

// WithCredentialsFile sets the service-account JSON key used to authenticate.
func WithCredentialsFile(path string) SheetsOption {
	return func(s *SheetsStore) {
		s.credentialsFile = path
	}
}

// withSheetValues replaces the Sheets client; tests use it to inject fakes.
func withSheetValues(v sheetValues) SheetsOption {
	return func(s *SheetsStore) {
		s.dial = func(context.Context) (sheetValues, error) { return v, nil }
	}
}

// SheetsStore keeps ratings as rows [player, position, user, rating] in a
// Google Sheets worksheet whose first row is a header.
type SheetsStore struct {
	spreadsheetID   string
	worksheet       string
	credentialsFile string
	dial            func(ctx context.Context) (sheetValues, error)
	values          *handle[sheetValues]
}

// NewSheetsStore creates a store for the given spreadsheet. The API client is
// created on first use.
func NewSheetsStore(spreadsheetID string, opts ...SheetsOption) *SheetsStore {
	s := &SheetsStore{
		spreadsheetID: spreadsheetID,
		worksheet:     defaultWorksheet,
	}
	s.dial = s.dialGoogle
	for _, opt := range opts {
		opt(s)
	}
	s.values = newHandle(s.dial, nil)
	return s
}

func (s *SheetsStore) dialGoogle(ctx context.Context) (sheetValues, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if s.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &googleValues{svc: svc, spreadsheetID: s.spreadsheetID}, nil
}

// a1 builds a quoted A1 range on the configured worksheet.
func (s *SheetsStore) a1(cells string) string {
	return "'" + strings.ReplaceAll(s.worksheet, "'", "''") + "'!" + cells
}

// LoadAll reads every data row below the header.
func (s *SheetsStore) LoadAll(ctx context.Context) (model.Table, error) {
	const op = "sheets.load_all"
	start := time.Now()

	rows, err := s.readRows(ctx)
	if err != nil {
		metrics.RecordStoreError("load_all")
		return nil, unavailable(op, err)
	}
	parsed := make([]Row, 0, len(rows))
	for i, cells := range rows {
		if i == 0 || blank(cells) {
			continue
		}
		r, err := parseRow(i+1, cells)
		if err != nil {
			metrics.RecordStoreError("load_all")
			return nil, unavailable(op, err)
		}
		parsed = append(parsed, r)
	}
	metrics.RecordStoreLatency("load_all", float64(time.Since(start).Microseconds())/1000)
	return foldRows(parsed), nil
}

// Upsert updates the rating cell of the first matching row, or appends a new
// row when there is none.
func (s *SheetsStore) Upsert(ctx context.Context, player string, pos model.Position, user string, r model.Rating) error {
	const op = "sheets.upsert"
	start := time.Now()

	if err := s.upsert(ctx, player, pos, user, r); err != nil {
		metrics.RecordStoreError("upsert")
		return unavailable(op, err)
	}
	metrics.RecordStoreLatency("upsert", float64(time.Since(start).Microseconds())/1000)
	return nil
}

func (s *SheetsStore) upsert(ctx context.Context, player string, pos model.Position, user string, r model.Rating) error {
	values, err := s.values.Get(ctx)
	if err != nil {
		return err
	}
	rows, err := s.readRows(ctx)
	if err != nil {
		return err
	}

	for i, cells := range rows {
		if i == 0 || len(cells) < rowColumns {
			continue
		}
		if matches(cells, player, pos, user) {
			rng := s.a1("D" + strconv.Itoa(i+1))
			return values.Update(ctx, rng, [][]interface{}{{int(r)}})
		}
	}

	row := []interface{}{player, string(pos), user, int(r)}
	batch := [][]interface{}{row}
	if len(rows) == 0 {
		batch = [][]interface{}{sheetHeader, row}
	}
	return values.Append(ctx, s.a1("A:D"), batch)
}

func (s *SheetsStore) readRows(ctx context.Context) ([][]string, error) {
	values, err := s.values.Get(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := values.Get(ctx, s.a1("A:D"))
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", s.worksheet, err)
	}
	rows := make([][]string, len(raw))
	for i, r := range raw {
		cells := make([]string, len(r))
		for j, v := range r {
			cells[j] = cellString(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

// Close drops the client handle.
func (s *SheetsStore) Close() error {
	return s.values.Close()
}

func matches(cells []string, player string, pos model.Position, user string) bool {
	if strings.TrimSpace(cells[0]) != player || strings.TrimSpace(cells[2]) != user {
		return false
	}
	p, err := model.ParsePosition(cells[1])
	return err == nil && p == pos
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
