package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/rustyeddy/fundnav/fund"
)

// period_date is stored as RFC3339 in UTC so text order is date order.
const periodLayout = time.RFC3339

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Add(e fund.Entry) (string, error) {
	e, err := prepare(e)
	if err != nil {
		return "", err
	}

	_, err = s.db.Exec(`
		INSERT INTO entries
		(id, period_date, realised_pnl, charges, funds_in_out, outstanding_units)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date.Format(periodLayout), e.RealisedPnL, e.Charges, e.FundsInOut, e.OutstandingUnits,
	)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return "", fmt.Errorf("%s: %w", e.Date.Format(time.DateOnly), ErrDuplicateDate)
		}
		return "", err
	}

	log.Debug().Str("id", e.ID).Time("date", e.Date).Msg("ledger entry added")
	return e.ID, nil
}

func (s *SQLite) Get(entryID string) (fund.Entry, error) {
	row := s.db.QueryRow(`
		SELECT id, period_date, realised_pnl, charges, funds_in_out, outstanding_units
		FROM entries
		WHERE id = ?`, entryID)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fund.Entry{}, fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
		}
		return fund.Entry{}, err
	}
	return e, nil
}

func (s *SQLite) List() ([]fund.Entry, error) {
	return s.query(`
		SELECT id, period_date, realised_pnl, charges, funds_in_out, outstanding_units
		FROM entries
		ORDER BY period_date ASC`)
}

func (s *SQLite) query(q string, args ...any) ([]fund.Entry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []fund.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Remove(entryID string) error {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}

	log.Debug().Str("id", entryID).Msg("ledger entry removed")
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (fund.Entry, error) {
	var (
		e      fund.Entry
		period string
	)
	if err := sc.Scan(&e.ID, &period, &e.RealisedPnL, &e.Charges, &e.FundsInOut, &e.OutstandingUnits); err != nil {
		return fund.Entry{}, err
	}

	d, err := time.Parse(periodLayout, period)
	if err != nil {
		return fund.Entry{}, fmt.Errorf("entry %s: bad period_date %q: %w", e.ID, period, err)
	}
	e.Date = d
	return e, nil
}
