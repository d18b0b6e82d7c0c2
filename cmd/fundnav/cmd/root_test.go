package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/fundnav/config"
	"github.com/rustyeddy/fundnav/fund"
	"github.com/rustyeddy/fundnav/ledger"
	"github.com/rustyeddy/fundnav/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Commands share package level flag state, so these tests run serially
// and pass every flag they rely on.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, mut func(c *config.Config)) string {
	t.Helper()

	c := config.Default()
	c.Ledger.EntriesFile = filepath.Join(t.TempDir(), "entries.csv")
	mut(c)
	path := filepath.Join(t.TempDir(), "fund.yaml")
	require.NoError(t, c.SaveToFile(path))
	return path
}

func writeEntries(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestComputeCommand(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Fund.Name = "CLI Fund"
		c.Fund.Currency = "USD"
		c.Log.Level = "error"
	})
	in := writeEntries(t, `date,realised_pnl,charges,funds_in_out
2025-01-06,0,0,"100,000"
2025-01-13,5000,500,0
2025-01-20,-2000,200,20000
`)

	out, err := execute(t, "compute", "--config", cfgPath, "-i", in, "-f", "json")
	require.NoError(t, err)

	var resp report.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "CLI Fund", resp.Fund)
	assert.Equal(t, "USD", resp.Currency)
	require.Len(t, resp.Entries, 3)
	assert.InDelta(t, 104.5, resp.Entries[1].NAV, 1e-9)
	assert.InDelta(t, 102.65341365461848, resp.Entries[2].NAV, 1e-9)
	assert.Equal(t, 1.77, resp.Entries[2].NAVDrawdown)
}

func TestComputeCommandError(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) { c.Log.Level = "error" })
	in := writeEntries(t, `date,realised_pnl,charges,funds_in_out
2025-01-06,0,0,1000
2025-01-13,0,0,-5000
`)

	_, err := execute(t, "compute", "--config", cfgPath, "-i", in, "-f", "text")
	require.Error(t, err)

	var zu *fund.ZeroUnitsError
	require.True(t, errors.As(err, &zu))
	assert.Equal(t, 1, zu.Index)
}

func TestLedgerCommands(t *testing.T) {
	cfgPath := writeConfig(t, func(c *config.Config) {
		c.Ledger = config.LedgerConfig{
			Type:   config.LedgerSQLite,
			DBPath: filepath.Join(t.TempDir(), "fund.sqlite"),
		}
		c.Log.Level = "error"
	})

	weeks := [][]string{
		{"--date", "2025-01-13", "--pnl", "5000", "--charges", "500", "--flow", "0"},
		{"--date", "2025-01-06", "--pnl", "0", "--charges", "0", "--flow", "100000"},
		{"--date", "2025-01-20", "--pnl", "-2000", "--charges", "200", "--flow", "20000"},
	}
	for _, w := range weeks {
		out, err := execute(t, append([]string{"ledger", "add", "--config", cfgPath}, w...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "Added "+w[1])
	}

	_, err := execute(t, "ledger", "add", "--config", cfgPath,
		"--date", "2025-01-06", "--pnl", "0", "--charges", "0", "--flow", "1")
	assert.Error(t, err)

	out, err := execute(t, "ledger", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-01-06")
	assert.Contains(t, out, "2025-01-20")

	out, err = execute(t, "ledger", "compute", "--config", cfgPath, "-f", "json")
	require.NoError(t, err)

	var resp report.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, "2025-01-06", resp.Entries[0].Date)
	assert.InDelta(t, 102.65341365461848, resp.Entries[2].NAV, 1e-9)

	_, err = execute(t, "ledger", "rm", "--config", cfgPath, "not-an-id")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	first := resp.Entries[0].ID
	out, err = execute(t, "ledger", "show", "--config", cfgPath, first)
	require.NoError(t, err)
	assert.Contains(t, out, "Funds In/Out:  100000.00")

	out, err = execute(t, "ledger", "rm", "--config", cfgPath, first)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2025-01-06")

	out, err = execute(t, "ledger", "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "2025-01-06")
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fund.yaml")
	db := filepath.Join(t.TempDir(), "fund.sqlite")

	out, err := execute(t, "config", "init", path, "--config=",
		"--name", "Harbour Fund", "--currency", "usd", "--units", "500", "--ledger", "sqlite", "--path", db)
	require.NoError(t, err)
	assert.Contains(t, out, `for fund "Harbour Fund"`)

	c, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "USD", c.Fund.Currency)
	assert.Equal(t, 500.0, c.Fund.InitialUnits)
	assert.Equal(t, config.LedgerConfig{Type: config.LedgerSQLite, DBPath: db}, c.Ledger)

	out, err = execute(t, "config", "validate", path, "--config=")
	require.NoError(t, err)
	assert.Contains(t, out, "Fund:          Harbour Fund")
	assert.Contains(t, out, "Seed units:    500")
	assert.Contains(t, out, "Entries:       "+db+" (sqlite)")

	_, err = execute(t, "config", "init", filepath.Join(t.TempDir(), "bad.yaml"), "--config=",
		"--name", "Harbour Fund", "--currency", "usd", "--units", "500", "--ledger", "postgres", "--path", db)
	assert.ErrorContains(t, err, "ledger.type")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--config=")
	require.NoError(t, err)
	assert.Contains(t, out, "fundnav version "+version)
}
