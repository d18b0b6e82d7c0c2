package fund

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrZeroUnits      = errors.New("outstanding units exhausted")
	ErrNonPositiveNAV = errors.New("non-positive nav")
	ErrOrdering       = errors.New("entries not in date order")
	ErrInvalidEntry   = errors.New("invalid entry")
	ErrInvalidOption  = errors.New("invalid option")
)

const dateLayout = "2006-01-02"

// ZeroUnitsError reports an entry that cannot be valued because the unit
// base it builds on is zero or negative.
type ZeroUnitsError struct {
	Index int
	Date  time.Time
	Units float64
}

func (e *ZeroUnitsError) Error() string {
	return fmt.Sprintf("entry %d (%s): outstanding units %g: %v",
		e.Index, e.Date.Format(dateLayout), e.Units, ErrZeroUnits)
}

func (e *ZeroUnitsError) Unwrap() error { return ErrZeroUnits }

// NonPositiveNAVError reports a division by a NAV that is zero or
// negative. Field names the value that was used as the divisor.
type NonPositiveNAVError struct {
	Index int
	Date  time.Time
	Field string
	Value float64
}

func (e *NonPositiveNAVError) Error() string {
	return fmt.Sprintf("entry %d (%s): %s is %g: %v",
		e.Index, e.Date.Format(dateLayout), e.Field, e.Value, ErrNonPositiveNAV)
}

func (e *NonPositiveNAVError) Unwrap() error { return ErrNonPositiveNAV }

// OrderingError reports an entry dated on or before its predecessor.
type OrderingError struct {
	Index    int
	Date     time.Time
	Previous time.Time
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("entry %d (%s) is not after %s: %v",
		e.Index, e.Date.Format(dateLayout), e.Previous.Format(dateLayout), ErrOrdering)
}

func (e *OrderingError) Unwrap() error { return ErrOrdering }

// ValidationError reports an input field with an unusable value.
type ValidationError struct {
	Index  int
	Date   time.Time
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry %d (%s): %s %g %s: %v",
		e.Index, e.Date.Format(dateLayout), e.Field, e.Value, e.Reason, ErrInvalidEntry)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidEntry }
