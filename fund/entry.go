package fund

import "time"

// DefaultInitialUnits seeds the unit base of the first entry when the
// caller does not supply one.
const DefaultInitialUnits = 1000.0

// Entry is one weekly accounting period. The first five fields are
// supplied by the caller, the rest are filled in by Compute.
type Entry struct {
	ID          string
	Date        time.Time
	RealisedPnL float64
	Charges     float64
	FundsInOut  float64

	// PreviousNAV is nil for the first entry.
	PreviousNAV      *float64
	OutstandingUnits float64
	FundValue        float64
	NAV              float64
	NAVPeak          float64

	// NAVDrawdown is the percentage decline from NAVPeak rounded to 2
	// decimal places. NAVDrawdownRaw keeps full precision.
	NAVDrawdown    float64
	NAVDrawdownRaw float64

	// Closed marks an entry whose redemption took the unit base to zero.
	// Its NAV is the price the final redemption was struck at.
	Closed bool
}

// NetPL is the trading result of the period net of charges.
func (e Entry) NetPL() float64 {
	return e.RealisedPnL - e.Charges
}

// Flow reports the direction of the capital flow: 1 for a contribution,
// -1 for a redemption and 0 when no money moved.
func (e Entry) Flow() int {
	switch {
	case e.FundsInOut > 0:
		return 1
	case e.FundsInOut < 0:
		return -1
	}
	return 0
}

// AtPeak is true when the entry's NAV is the highest seen so far.
func (e Entry) AtPeak() bool {
	return e.NAV >= e.NAVPeak
}
