// Package fund reconstructs the state of a unitised fund from a series of
// weekly entries.
//
// Each entry carries the period's realised P/L, its charges and any
// external capital flow. Compute folds over the series and derives the
// outstanding units, fund value, NAV per unit, running NAV peak and the
// drawdown from that peak. Contributions buy units and redemptions cancel
// them at the previous period's NAV.
package fund

import (
	"math"
	"strconv"
)

// unitsEpsilon is the balance under which the unit base counts as fully
// redeemed.
const unitsEpsilon = 1e-6

// Compute returns a copy of entries with the derived fields filled in.
// The input slice is not modified. Empty input yields an empty result.
//
// Processing stops at the first entry that cannot be valued and the error
// is returned with a nil slice. The error is one of *ZeroUnitsError,
// *NonPositiveNAVError, *OrderingError or *ValidationError.
func Compute(entries []Entry, opts ...Option) ([]Entry, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, len(entries))
	copy(out, entries)

	var peak float64
	for i := range out {
		e := &out[i]
		if err := validate(i, out, o); err != nil {
			return nil, err
		}

		if i == 0 {
			err = seed(e, o.initialUnits)
		} else {
			err = advance(i, e, out[i-1])
		}
		if err != nil {
			return nil, err
		}

		peak, err = track(i, e, peak)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func validate(i int, entries []Entry, o options) error {
	e := entries[i]
	type amount struct {
		name string
		v    float64
	}
	amounts := []amount{
		{"realised_pnl", e.RealisedPnL},
		{"charges", e.Charges},
		{"funds_in_out", e.FundsInOut},
	}
	// Only the first entry's units are read; later ones are derived.
	if i == 0 {
		amounts = append(amounts, amount{"outstanding_units", e.OutstandingUnits})
	}
	for _, a := range amounts {
		if math.IsNaN(a.v) || math.IsInf(a.v, 0) {
			return &ValidationError{Index: i, Date: e.Date, Field: a.name, Value: a.v, Reason: "is not finite"}
		}
	}
	if e.Charges < 0 {
		return &ValidationError{Index: i, Date: e.Date, Field: "charges", Value: e.Charges, Reason: "is negative"}
	}

	if o.checkOrder && i > 0 && !e.Date.After(entries[i-1].Date) {
		return &OrderingError{Index: i, Date: e.Date, Previous: entries[i-1].Date}
	}
	return nil
}

// seed values the first entry. Only the capital flow counts towards the
// opening fund value.
func seed(e *Entry, initialUnits float64) error {
	units := e.OutstandingUnits
	if units == 0 {
		units = initialUnits
	}
	if units <= 0 {
		return &ZeroUnitsError{Index: 0, Date: e.Date, Units: units}
	}

	e.PreviousNAV = nil
	e.OutstandingUnits = units
	e.FundValue = e.FundsInOut
	e.NAV = e.FundValue / units
	e.Closed = false
	return nil
}

func advance(i int, e *Entry, prev Entry) error {
	if prev.Closed || prev.OutstandingUnits <= unitsEpsilon {
		return &ZeroUnitsError{Index: i, Date: e.Date, Units: prev.OutstandingUnits}
	}

	prevNAV := prev.NAV
	e.PreviousNAV = &prevNAV

	value := prevNAV*prev.OutstandingUnits + e.NetPL()
	units := prev.OutstandingUnits

	if flow := e.Flow(); flow != 0 {
		if prevNAV <= 0 {
			return &NonPositiveNAVError{Index: i, Date: e.Date, Field: "previous_nav", Value: prevNAV}
		}
		// Units change hands at the last struck price, not one that
		// already includes this period's result.
		units += float64(flow) * math.Abs(e.FundsInOut) / prevNAV
		value += e.FundsInOut
	}

	e.FundValue = value
	e.Closed = false
	switch {
	case units < -unitsEpsilon:
		return &ZeroUnitsError{Index: i, Date: e.Date, Units: units}
	case units <= unitsEpsilon:
		// A closing week may not leave value behind with no units to
		// carry it, as happens when it also books a result.
		if math.Abs(value) > unitsEpsilon*math.Max(prevNAV, 1) {
			return &ZeroUnitsError{Index: i, Date: e.Date, Units: units}
		}
		e.OutstandingUnits = 0
		e.NAV = prevNAV
		e.Closed = true
		return nil
	}

	e.OutstandingUnits = units
	e.NAV = value / units
	return nil
}

// track updates the running peak and sets the entry's drawdown from it.
func track(i int, e *Entry, peak float64) (float64, error) {
	peak = math.Max(peak, e.NAV)
	e.NAVPeak = peak

	switch {
	case peak > 0:
		e.NAVDrawdownRaw = (peak - e.NAV) / peak * 100
		e.NAVDrawdown = Round2(e.NAVDrawdownRaw)
	case peak == 0:
		e.NAVDrawdownRaw = 0
		e.NAVDrawdown = 0
	default:
		return peak, &NonPositiveNAVError{Index: i, Date: e.Date, Field: "nav_peak", Value: peak}
	}
	return peak, nil
}

// Round2 rounds the exact binary value of x to 2 decimal places with
// ties to even, so 2.675 (stored just below) gives 2.67 and 0.125 gives
// 0.12.
func Round2(x float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return r
}
