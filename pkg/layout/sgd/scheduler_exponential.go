package sgd

import "math"

// SchedulerExponential decays the learning rate geometrically,
// eta(t) = a*exp(-b*t). This is the decay recommended by Zheng, Pawar and
// Goodman and the default for [Sgd.Scheduler].
type SchedulerExponential struct {
	schedule
	a float64
	b float64
}

// NewSchedulerExponential builds an exponential decay from etaMax down to
// etaMin over tMax iterations.
func NewSchedulerExponential(tMax int, etaMin, etaMax float64) (*SchedulerExponential, error) {
	if err := validateSchedule(tMax, etaMin, etaMax); err != nil {
		return nil, err
	}
	b := 0.0
	if tMax > 1 {
		b = math.Log(etaMax/etaMin) / float64(tMax-1)
	}
	return &SchedulerExponential{schedule: schedule{tMax: tMax}, a: etaMax, b: b}, nil
}

// Step invokes the callback with the current learning rate and advances.
func (s *SchedulerExponential) Step(callback func(eta float64)) {
	callback(s.a * math.Exp(-s.b*float64(s.t)))
	s.t++
}

// Run steps through the remaining iterations.
func (s *SchedulerExponential) Run(callback func(eta float64)) {
	for !s.IsFinished() {
		s.Step(callback)
	}
}

var _ Scheduler = (*SchedulerExponential)(nil)
