package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/rustyeddy/fundnav/fund"
	"github.com/shopspring/decimal"
)

// Header is the column order written by WriteCSV.
var Header = []string{"id", "date", "realised_pnl", "charges", "funds_in_out", "outstanding_units"}

// Column aliases accepted in a header row.
var aliases = map[string]string{
	"period_date":  "date",
	"week":         "date",
	"realized_pnl": "realised_pnl",
	"pnl":          "realised_pnl",
	"profit":       "realised_pnl",
	"fees":         "charges",
	"flow":         "funds_in_out",
	"funds":        "funds_in_out",
	"units":        "outstanding_units",
}

// positional columns used when the file has no header row
var defaultColumns = map[string]int{
	"date":              0,
	"realised_pnl":      1,
	"charges":           2,
	"funds_in_out":      3,
	"outstanding_units": 4,
}

// ReadCSV reads weekly entries.
//
// A header row is optional. With one, columns are matched by name and
// unknown columns (such as derived values from an earlier run) are
// ignored. Without one, rows are read as
//
//	date,realised_pnl,charges,funds_in_out[,outstanding_units]
//
// Dates are 2006-01-02 or RFC3339. Amounts may use ',' or '_' as
// thousands separators and empty amounts read as zero. Blank rows and
// lines starting with '#' are skipped. Entries are returned in file order.
func ReadCSV(r io.Reader) ([]fund.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	cols := defaultColumns
	sawFirst := false

	var out []fund.Entry
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if blank(row) {
			continue
		}
		line, _ := cr.FieldPos(0)

		if !sawFirst {
			sawFirst = true
			if isHeader(row) {
				cols, err = headerColumns(row)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				continue
			}
		}

		e, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteCSV writes the caller supplied fields of entries with a header
// row. The output can be read back with ReadCSV.
func WriteCSV(w io.Writer, entries []fund.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		units := ""
		if e.OutstandingUnits != 0 {
			units = amount(e.OutstandingUnits)
		}
		err := cw.Write([]string{
			e.ID,
			formatDate(e.Date),
			amount(e.RealisedPnL),
			amount(e.Charges),
			amount(e.FundsInOut),
			units,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func columnName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if a, ok := aliases[s]; ok {
		return a
	}
	return s
}

func isHeader(row []string) bool {
	name := columnName(row[0])
	return name == "date" || name == "id"
}

func headerColumns(row []string) (map[string]int, error) {
	cols := make(map[string]int, len(row))
	for i, c := range row {
		name := columnName(c)
		if _, dup := cols[name]; dup && name != "" {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		cols[name] = i
	}
	if _, ok := cols["date"]; !ok {
		return nil, errors.New("header has no date column")
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int) (fund.Entry, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var e fund.Entry
	var err error

	e.ID = cell("id")
	if e.Date, err = parseDate(cell("date")); err != nil {
		return e, err
	}
	if e.RealisedPnL, err = parseAmount("realised_pnl", cell("realised_pnl")); err != nil {
		return e, err
	}
	if e.Charges, err = parseAmount("charges", cell("charges")); err != nil {
		return e, err
	}
	if e.FundsInOut, err = parseAmount("funds_in_out", cell("funds_in_out")); err != nil {
		return e, err
	}
	if e.OutstandingUnits, err = parseAmount("outstanding_units", cell("outstanding_units")); err != nil {
		return e, err
	}
	return e, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t.UTC(), nil
}

func formatDate(t time.Time) string {
	t = t.UTC()
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

func parseAmount(field, s string) (float64, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", field, s, err)
	}
	return d.InexactFloat64(), nil
}

func amount(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// CSVFile keeps entries in a single CSV file. Every change rewrites the
// whole file, which suits a ledger that grows by one row a week.
type CSVFile struct {
	path string
}

// NewCSVFile opens the ledger at path, creating it with a header row
// when it does not exist.
func NewCSVFile(path string) (*CSVFile, error) {
	if path == "" {
		return nil, errors.New("csv ledger path is required")
	}
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		s := &CSVFile{path: path}
		if err := s.save(nil); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	return &CSVFile{path: path}, nil
}

func (s *CSVFile) load() ([]fund.Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	sortByDate(entries)
	return entries, nil
}

func (s *CSVFile) save(entries []fund.Entry) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *CSVFile) Add(e fund.Entry) (string, error) {
	e, err := prepare(e)
	if err != nil {
		return "", err
	}

	entries, err := s.load()
	if err != nil {
		return "", err
	}
	for _, x := range entries {
		if x.Date.Equal(e.Date) {
			return "", fmt.Errorf("%s: %w", formatDate(e.Date), ErrDuplicateDate)
		}
	}

	entries = append(entries, e)
	sortByDate(entries)
	for i := range entries {
		entries[i], err = prepare(entries[i])
		if err != nil {
			return "", err
		}
	}
	if err := s.save(entries); err != nil {
		return "", err
	}

	log.Debug().Str("id", e.ID).Time("date", e.Date).Str("path", s.path).Msg("ledger entry added")
	return e.ID, nil
}

func (s *CSVFile) Get(entryID string) (fund.Entry, error) {
	entries, err := s.load()
	if err != nil {
		return fund.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == entryID {
			return e, nil
		}
	}
	return fund.Entry{}, fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
}

func (s *CSVFile) List() ([]fund.Entry, error) {
	return s.load()
}

func (s *CSVFile) Remove(entryID string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}
	if err := s.save(kept); err != nil {
		return err
	}

	log.Debug().Str("id", entryID).Str("path", s.path).Msg("ledger entry removed")
	return nil
}

func (s *CSVFile) Close() error {
	return nil
}
