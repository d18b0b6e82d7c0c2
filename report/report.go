// Package report renders computed fund entries as text, org-mode, JSON or
// CSV.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/rustyeddy/fundnav/fund"
	"github.com/shopspring/decimal"
)

// Formats accepted by Write.
var Formats = []string{"text", "csv", "json", "org"}

// Report is a computed series together with its summary.
type Report struct {
	Fund      string
	Currency  string
	Generated time.Time
	Entries   []fund.Entry
	Summary   fund.Summary
}

// New builds a report over entries already processed by fund.Compute.
func New(fundName, currency string, entries []fund.Entry) Report {
	return Report{
		Fund:      fundName,
		Currency:  strings.ToUpper(currency),
		Generated: time.Now().UTC(),
		Entries:   entries,
		Summary:   fund.Summarize(entries),
	}
}

// Write renders r in the named format.
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case "text", "":
		return WriteText(w, r)
	case "csv":
		return WriteCSV(w, r.Entries)
	case "json":
		return WriteJSON(w, r)
	case "org":
		return WriteOrg(w, r)
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// Money formats an amount with the symbol and digit grouping of the
// report currency.
func (r Report) Money(amount float64) string {
	return formatMoney(amount, r.Currency)
}

func formatMoney(amount float64, code string) string {
	cur := *money.New(0, code).Currency()
	if cur.Template == "" {
		return fmt.Sprintf("%.2f %s", amount, code)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

func pct(x float64) string {
	return fmt.Sprintf("%.2f%%", x)
}

func previousNAV(e fund.Entry) string {
	if e.PreviousNAV == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *e.PreviousNAV)
}
