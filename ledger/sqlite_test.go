package ledger

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/fundnav/fund"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)

	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'entries'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "entries", name)
}

func TestSQLiteAddAndGet(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)

	entryID, err := s.Add(fund.Entry{
		Date:             day(2025, 1, 6),
		FundsInOut:       100000,
		OutstandingUnits: 2000,
		NAV:              123,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entryID)

	got, err := s.Get(entryID)
	require.NoError(t, err)
	assert.Equal(t, entryID, got.ID)
	assert.True(t, got.Date.Equal(day(2025, 1, 6)))
	assert.Equal(t, 100000.0, got.FundsInOut)
	assert.Equal(t, 2000.0, got.OutstandingUnits)
	assert.Equal(t, 0.0, got.NAV)
	assert.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var period string
	require.NoError(t, db.QueryRow(`SELECT period_date FROM entries WHERE id = ?`, entryID).Scan(&period))
	assert.Equal(t, "2025-01-06T00:00:00Z", period)
}

func TestSQLiteListOrdersByDate(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	for _, e := range []fund.Entry{
		{Date: day(2025, 1, 20), RealisedPnL: -2000, Charges: 200, FundsInOut: 20000},
		{Date: day(2025, 1, 6), FundsInOut: 100000},
		{Date: day(2025, 1, 13), RealisedPnL: 5000, Charges: 500},
	} {
		_, err := s.Add(e)
		require.NoError(t, err)
	}

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Date.Equal(day(2025, 1, 6)))
	assert.True(t, entries[2].Date.Equal(day(2025, 1, 20)))

	computed, err := fund.Compute(entries)
	require.NoError(t, err)
	assert.InDelta(t, 102.65341365461848, computed[2].NAV, 1e-9)
}

func TestSQLiteDuplicateDate(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	_, err := s.Add(fund.Entry{Date: day(2025, 1, 6), FundsInOut: 1000})
	require.NoError(t, err)
	_, err = s.Add(fund.Entry{Date: day(2025, 1, 6), RealisedPnL: 5})
	assert.ErrorIs(t, err, ErrDuplicateDate)
}

func TestSQLiteRemove(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = s.Close() })

	entryID, err := s.Add(fund.Entry{Date: day(2025, 1, 6), FundsInOut: 1000})
	require.NoError(t, err)

	require.NoError(t, s.Remove(entryID))
	assert.ErrorIs(t, s.Remove(entryID), ErrNotFound)

	_, err = s.Get(entryID)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
