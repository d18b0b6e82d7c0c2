// Package ledger stores the weekly entries a fund is computed from. Only
// the caller supplied fields are kept; derived values are recomputed by
// fund.Compute on every read.
package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rustyeddy/fundnav/config"
	"github.com/rustyeddy/fundnav/fund"
	"github.com/rustyeddy/fundnav/internal/id"
)

var (
	ErrNotFound      = errors.New("entry not found")
	ErrDuplicateDate = errors.New("entry already exists for date")
)

// Store is a persistent list of weekly entries.
type Store interface {
	// Add stores e and returns its ID. An ID is issued when e has none.
	Add(e fund.Entry) (string, error)
	Get(id string) (fund.Entry, error)
	// List returns the entries ordered by date.
	List() ([]fund.Entry, error)
	Remove(id string) error
	Close() error
}

// Open returns the store selected by cfg.
func Open(cfg config.LedgerConfig) (Store, error) {
	switch cfg.Type {
	case config.LedgerCSV:
		return NewCSVFile(cfg.EntriesFile)
	case config.LedgerSQLite:
		return NewSQLite(cfg.DBPath)
	}
	return nil, fmt.Errorf("unknown ledger type %q", cfg.Type)
}

func prepare(e fund.Entry) (fund.Entry, error) {
	if e.Date.IsZero() {
		return e, fmt.Errorf("entry date is required: %w", fund.ErrInvalidEntry)
	}
	if e.Charges < 0 {
		return e, fmt.Errorf("charges %g is negative: %w", e.Charges, fund.ErrInvalidEntry)
	}
	if e.ID == "" {
		e.ID = id.ForPeriod(e.Date)
	}
	return inputOnly(e), nil
}

// inputOnly drops everything Compute derives, keeping a caller supplied
// unit seed.
func inputOnly(e fund.Entry) fund.Entry {
	return fund.Entry{
		ID:               e.ID,
		Date:             e.Date.UTC(),
		RealisedPnL:      e.RealisedPnL,
		Charges:          e.Charges,
		FundsInOut:       e.FundsInOut,
		OutstandingUnits: e.OutstandingUnits,
	}
}

func sortByDate(entries []fund.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
