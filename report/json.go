package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/rustyeddy/fundnav/fund"
)

// Entry is the wire form of a computed entry.
type Entry struct {
	ID               string   `json:"id,omitempty"`
	Date             string   `json:"date"`
	RealisedPnL      float64  `json:"realised_pnl"`
	Charges          float64  `json:"charges"`
	FundsInOut       float64  `json:"funds_in_out"`
	PreviousNAV      *float64 `json:"previous_nav"`
	OutstandingUnits float64  `json:"outstanding_units"`
	FundValue        float64  `json:"fund_value"`
	NAV              float64  `json:"nav"`
	NAVPeak          float64  `json:"nav_peak"`
	NAVDrawdown      float64  `json:"nav_drawdown"`
	Closed           bool     `json:"closed,omitempty"`
}

// Summary is the wire form of fund.Summary.
type Summary struct {
	Start               string  `json:"start"`
	End                 string  `json:"end"`
	Weeks               int     `json:"weeks"`
	TotalPnL            float64 `json:"total_pnl"`
	TotalCharges        float64 `json:"total_charges"`
	Contributions       float64 `json:"contributions"`
	Redemptions         float64 `json:"redemptions"`
	Net                 float64 `json:"net"`
	FundValue           float64 `json:"fund_value"`
	Units               float64 `json:"outstanding_units"`
	NAV                 float64 `json:"nav"`
	NAVReturnPct        float64 `json:"nav_return_pct"`
	PeakNAV             float64 `json:"nav_peak"`
	DrawdownPct         float64 `json:"nav_drawdown"`
	MaxDrawdownPct      float64 `json:"max_drawdown"`
	WeeksSincePeak      int     `json:"weeks_since_peak"`
	MeanWeeklyReturnPct float64 `json:"mean_weekly_return_pct"`
	WeeklyVolatilityPct float64 `json:"weekly_volatility_pct"`
	Closed              bool    `json:"closed,omitempty"`
}

// Response is the envelope written by WriteJSON.
type Response struct {
	Fund     string   `json:"fund"`
	Currency string   `json:"currency"`
	Entries  []Entry  `json:"entries"`
	Summary  *Summary `json:"summary,omitempty"`
}

// WriteJSON writes r as an indented Response.
func WriteJSON(w io.Writer, r Report) error {
	resp := Response{
		Fund:     r.Fund,
		Currency: r.Currency,
		Entries:  make([]Entry, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, wireEntry(e))
	}
	if r.Summary.Weeks > 0 {
		s := wireSummary(r.Summary)
		resp.Summary = &s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func wireEntry(e fund.Entry) Entry {
	return Entry{
		ID:               e.ID,
		Date:             e.Date.Format(time.DateOnly),
		RealisedPnL:      e.RealisedPnL,
		Charges:          e.Charges,
		FundsInOut:       e.FundsInOut,
		PreviousNAV:      e.PreviousNAV,
		OutstandingUnits: e.OutstandingUnits,
		FundValue:        e.FundValue,
		NAV:              e.NAV,
		NAVPeak:          e.NAVPeak,
		NAVDrawdown:      e.NAVDrawdown,
		Closed:           e.Closed,
	}
}

func wireSummary(s fund.Summary) Summary {
	return Summary{
		Start:               s.Start.Format(time.DateOnly),
		End:                 s.End.Format(time.DateOnly),
		Weeks:               s.Weeks,
		TotalPnL:            s.TotalPnL,
		TotalCharges:        s.TotalCharges,
		Contributions:       s.Contributions,
		Redemptions:         s.Redemptions,
		Net:                 s.Net,
		FundValue:           s.FundValue,
		Units:               s.Units,
		NAV:                 s.EndNAV,
		NAVReturnPct:        s.NAVReturnPct,
		PeakNAV:             s.PeakNAV,
		DrawdownPct:         s.CurrentDrawdownPct,
		MaxDrawdownPct:      s.MaxDrawdownPct,
		WeeksSincePeak:      s.WeeksSincePeak,
		MeanWeeklyReturnPct: s.MeanWeeklyReturnPct,
		WeeklyVolatilityPct: s.WeeklyVolatilityPct,
		Closed:              s.Closed,
	}
}
