package fund

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a computed series.
type Summary struct {
	Weeks int
	Start time.Time
	End   time.Time

	TotalPnL      float64
	TotalCharges  float64
	Contributions float64
	Redemptions   float64
	NetFlows      float64
	NetPnL        float64 // TotalPnL - TotalCharges
	Net           float64 // NetPnL + NetFlows

	StartNAV     float64
	EndNAV       float64
	NAVReturnPct float64
	PeakNAV      float64

	MaxDrawdownPct     float64
	CurrentDrawdownPct float64
	WeeksSincePeak     int

	Units     float64
	FundValue float64
	Closed    bool

	MeanWeeklyReturnPct float64
	WeeklyVolatilityPct float64
}

// Summarize aggregates entries already processed by Compute.
func Summarize(entries []Entry) Summary {
	var s Summary
	if len(entries) == 0 {
		return s
	}

	first, last := entries[0], entries[len(entries)-1]
	s.Weeks = len(entries)
	s.Start = first.Date
	s.End = last.Date

	var maxDD float64
	peakIdx := 0
	returns := make([]float64, 0, len(entries))
	for i, e := range entries {
		s.TotalPnL += e.RealisedPnL
		s.TotalCharges += e.Charges
		switch e.Flow() {
		case 1:
			s.Contributions += e.FundsInOut
		case -1:
			s.Redemptions -= e.FundsInOut
		}

		if e.NAVDrawdownRaw > maxDD {
			maxDD = e.NAVDrawdownRaw
		}
		if e.AtPeak() {
			peakIdx = i
		}

		if i > 0 && !e.Closed && entries[i-1].NAV > 0 {
			returns = append(returns, (e.NAV/entries[i-1].NAV-1)*100)
		}
	}

	s.NetFlows = s.Contributions - s.Redemptions
	s.NetPnL = s.TotalPnL - s.TotalCharges
	s.Net = s.NetPnL + s.NetFlows

	s.StartNAV = first.NAV
	s.EndNAV = last.NAV
	if first.NAV > 0 {
		s.NAVReturnPct = (last.NAV/first.NAV - 1) * 100
	}
	s.PeakNAV = last.NAVPeak

	s.MaxDrawdownPct = Round2(maxDD)
	s.CurrentDrawdownPct = last.NAVDrawdown
	s.WeeksSincePeak = len(entries) - 1 - peakIdx

	s.Units = last.OutstandingUnits
	s.FundValue = last.FundValue
	s.Closed = last.Closed

	switch len(returns) {
	case 0:
	case 1:
		s.MeanWeeklyReturnPct = returns[0]
	default:
		s.MeanWeeklyReturnPct, s.WeeklyVolatilityPct = stat.MeanStdDev(returns, nil)
	}
	return s
}
