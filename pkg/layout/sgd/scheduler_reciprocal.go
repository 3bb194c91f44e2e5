package sgd

// SchedulerReciprocal decays the learning rate hyperbolically,
// eta(t) = a/(1 + b*t): a fast initial drop that flattens toward the end.
type SchedulerReciprocal struct {
	schedule
	a float64
	b float64
}

// NewSchedulerReciprocal builds a reciprocal decay from etaMax down to
// etaMin over tMax iterations.
func NewSchedulerReciprocal(tMax int, etaMin, etaMax float64) (*SchedulerReciprocal, error) {
	if err := validateSchedule(tMax, etaMin, etaMax); err != nil {
		return nil, err
	}
	b := 0.0
	if tMax > 1 {
		b = (etaMax/etaMin - 1) / float64(tMax-1)
	}
	return &SchedulerReciprocal{schedule: schedule{tMax: tMax}, a: etaMax, b: b}, nil
}

// Step invokes the callback with the current learning rate and advances.
func (s *SchedulerReciprocal) Step(callback func(eta float64)) {
	callback(s.a / (1 + s.b*float64(s.t)))
	s.t++
}

// Run steps through the remaining iterations.
func (s *SchedulerReciprocal) Run(callback func(eta float64)) {
	for !s.IsFinished() {
		s.Step(callback)
	}
}

var _ Scheduler = (*SchedulerReciprocal)(nil)
