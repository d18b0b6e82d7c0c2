package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/fundnav/fund"
)

// CSVHeader is the column order written by WriteCSV.
var CSVHeader = []string{
	"id", "date", "realised_pnl", "charges", "funds_in_out",
	"previous_nav", "outstanding_units", "fund_value", "nav", "nav_peak", "nav_drawdown",
}

// WriteCSV writes computed entries, one row per week.
func WriteCSV(w io.Writer, entries []fund.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		prev := ""
		if e.PreviousNAV != nil {
			prev = f(*e.PreviousNAV)
		}
		err := cw.Write([]string{
			e.ID,
			e.Date.Format(time.DateOnly),
			f(e.RealisedPnL),
			f(e.Charges),
			f(e.FundsInOut),
			prev,
			f(e.OutstandingUnits),
			f(e.FundValue),
			f(e.NAV),
			f(e.NAVPeak),
			strconv.FormatFloat(e.NAVDrawdown, 'f', 2, 64),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
