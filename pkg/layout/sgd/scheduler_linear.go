package sgd

// SchedulerLinear decays the learning rate linearly, eta(t) = a - b*t,
// reaching etaMin exactly on the final iteration.
type SchedulerLinear struct {
	schedule
	a float64
	b float64
}

// NewSchedulerLinear builds a linear decay from etaMax down to etaMin over
// tMax iterations.
func NewSchedulerLinear(tMax int, etaMin, etaMax float64) (*SchedulerLinear, error) {
	if err := validateSchedule(tMax, etaMin, etaMax); err != nil {
		return nil, err
	}
	b := 0.0
	if tMax > 1 {
		b = (etaMax - etaMin) / float64(tMax-1)
	}
	return &SchedulerLinear{schedule: schedule{tMax: tMax}, a: etaMax, b: b}, nil
}

// Step invokes the callback with the current learning rate and advances.
func (s *SchedulerLinear) Step(callback func(eta float64)) {
	callback(s.a - s.b*float64(s.t))
	s.t++
}

// Run steps through the remaining iterations.
func (s *SchedulerLinear) Run(callback func(eta float64)) {
	for !s.IsFinished() {
		s.Step(callback)
	}
}

var _ Scheduler = (*SchedulerLinear)(nil)
