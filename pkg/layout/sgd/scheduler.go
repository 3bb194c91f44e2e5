package sgd

import (
	"math"

	"github.com/matzehuels/sgdraw/pkg/errors"
)

// Scheduler yields a decaying learning rate over a fixed number of
// iterations. Step invokes the callback with eta(t) and then advances t;
// Run repeats Step until IsFinished reports true. Interleaving manual
// Steps with a final Run completes exactly tMax callbacks in total.
//
// Every family starts at etaMax, ends at etaMin and is monotone
// non-increasing in between; the constant family stays at etaMax
// throughout.
type Scheduler interface {
	Run(callback func(eta float64))
	Step(callback func(eta float64))
	IsFinished() bool
}

// schedule is the iteration counter shared by all scheduler families.
type schedule struct {
	t    int
	tMax int
}

// IsFinished reports whether every iteration has been stepped.
func (s *schedule) IsFinished() bool {
	return s.t >= s.tMax
}

// validateSchedule rejects parameters no decay family can satisfy.
func validateSchedule(tMax int, etaMin, etaMax float64) error {
	if tMax < 1 {
		return errors.New(errors.ErrCodeInvalidParameter,
			"iteration count must be at least 1, got %d", tMax)
	}
	if etaMin <= 0 || math.IsNaN(etaMin) || math.IsInf(etaMin, 1) {
		return errors.New(errors.ErrCodeInvalidParameter,
			"etaMin must be positive and finite, got %v", etaMin)
	}
	if etaMax < etaMin || math.IsNaN(etaMax) || math.IsInf(etaMax, 1) {
		return errors.New(errors.ErrCodeInvalidParameter,
			"etaMax must be finite and at least etaMin, got %v", etaMax)
	}
	return nil
}
