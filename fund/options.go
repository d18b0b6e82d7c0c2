package fund

import (
	"fmt"
	"math"
)

type options struct {
	initialUnits float64
	checkOrder   bool
}

// Option configures a Compute call.
type Option func(*options)

// WithInitialUnits sets the unit base used for the first entry when the
// entry itself does not carry one.
func WithInitialUnits(units float64) Option {
	return func(o *options) {
		o.initialUnits = units
	}
}

// WithOrderCheck turns the strictly-increasing date check on or off. With
// the check off, entries are processed in the order given.
func WithOrderCheck(on bool) Option {
	return func(o *options) {
		o.checkOrder = on
	}
}

func newOptions(opts []Option) (options, error) {
	o := options{
		initialUnits: DefaultInitialUnits,
		checkOrder:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.initialUnits <= 0 || math.IsNaN(o.initialUnits) || math.IsInf(o.initialUnits, 0) {
		return o, fmt.Errorf("initial units %g must be positive: %w", o.initialUnits, ErrInvalidOption)
	}
	return o, nil
}
