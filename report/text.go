package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

const rule = "--------------------------------------------------"

// WriteText prints the entry table followed by the summary.
func WriteText(w io.Writer, r Report) error {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s NAV\n", r.Fund)
	fmt.Fprintln(w, "==================================================")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tP/L\tCharges\tFunds In/Out\tPrev NAV\tUnits\tFund Value\tNAV\tPeak\tDrawdown\t")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%s\t%.4f\t%.2f\t%.4f\t%.4f\t%s\t\n",
			e.Date.Format(time.DateOnly),
			e.RealisedPnL,
			e.Charges,
			e.FundsInOut,
			previousNAV(e),
			e.OutstandingUnits,
			e.FundValue,
			e.NAV,
			e.NAVPeak,
			pct(e.NAVDrawdown),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := r.Summary
	if s.Weeks == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No entries.")
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Start:         %s\n", s.Start.Format(time.DateOnly))
	fmt.Fprintf(w, "End:           %s\n", s.End.Format(time.DateOnly))
	fmt.Fprintf(w, "Weeks:         %d\n", s.Weeks)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Totals")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Realised P/L:  %s\n", r.Money(s.TotalPnL))
	fmt.Fprintf(w, "Charges:       %s\n", r.Money(s.TotalCharges))
	fmt.Fprintf(w, "Contributions: %s\n", r.Money(s.Contributions))
	fmt.Fprintf(w, "Redemptions:   %s\n", r.Money(s.Redemptions))
	fmt.Fprintf(w, "Net:           %s\n", r.Money(s.Net))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fund")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Fund Value:    %s\n", r.Money(s.FundValue))
	fmt.Fprintf(w, "Units:         %.4f\n", s.Units)
	fmt.Fprintf(w, "NAV:           %.4f\n", s.EndNAV)
	fmt.Fprintf(w, "NAV Return:    %s\n", pct(s.NAVReturnPct))
	fmt.Fprintf(w, "Peak NAV:      %.4f\n", s.PeakNAV)
	fmt.Fprintf(w, "Drawdown:      %s\n", pct(s.CurrentDrawdownPct))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", pct(s.MaxDrawdownPct))
	if s.WeeksSincePeak > 0 {
		fmt.Fprintf(w, "Since Peak:    %d weeks\n", s.WeeksSincePeak)
	}
	if s.Weeks > 2 {
		fmt.Fprintf(w, "Weekly Return: %s (volatility %s)\n", pct(s.MeanWeeklyReturnPct), pct(s.WeeklyVolatilityPct))
	}
	if s.Closed {
		fmt.Fprintln(w, "Status:        closed (all units redeemed)")
	}

	fmt.Fprintln(w)
	return nil
}
