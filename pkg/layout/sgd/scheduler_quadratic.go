package sgd

import "math"

// SchedulerQuadratic decays the learning rate along a parabola,
// eta(t) = a*(1 - b*t)². The root is placed beyond the final iteration so
// the curve stays monotone and bottoms out at etaMin instead of dipping
// through zero.
type SchedulerQuadratic struct {
	schedule
	a float64
	b float64
}

// NewSchedulerQuadratic builds a quadratic decay from etaMax down to
// etaMin over tMax iterations.
func NewSchedulerQuadratic(tMax int, etaMin, etaMax float64) (*SchedulerQuadratic, error) {
	if err := validateSchedule(tMax, etaMin, etaMax); err != nil {
		return nil, err
	}
	b := 0.0
	if tMax > 1 {
		b = (1 - math.Sqrt(etaMin/etaMax)) / float64(tMax-1)
	}
	return &SchedulerQuadratic{schedule: schedule{tMax: tMax}, a: etaMax, b: b}, nil
}

// Step invokes the callback with the current learning rate and advances.
func (s *SchedulerQuadratic) Step(callback func(eta float64)) {
	f := 1 - s.b*float64(s.t)
	callback(s.a * f * f)
	s.t++
}

// Run steps through the remaining iterations.
func (s *SchedulerQuadratic) Run(callback func(eta float64)) {
	for !s.IsFinished() {
		s.Step(callback)
	}
}

var _ Scheduler = (*SchedulerQuadratic)(nil)
