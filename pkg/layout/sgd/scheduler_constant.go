package sgd

// SchedulerConstant keeps the learning rate fixed at etaMax for every
// iteration. Useful for tests and for comparing decay families against a
// no-decay baseline.
type SchedulerConstant struct {
	schedule
	eta float64
}

// NewSchedulerConstant builds a constant schedule of tMax iterations at
// etaMax.
func NewSchedulerConstant(tMax int, etaMin, etaMax float64) (*SchedulerConstant, error) {
	if err := validateSchedule(tMax, etaMin, etaMax); err != nil {
		return nil, err
	}
	return &SchedulerConstant{schedule: schedule{tMax: tMax}, eta: etaMax}, nil
}

// Step invokes the callback with the constant learning rate and advances.
func (s *SchedulerConstant) Step(callback func(eta float64)) {
	callback(s.eta)
	s.t++
}

// Run steps through the remaining iterations.
func (s *SchedulerConstant) Run(callback func(eta float64)) {
	for !s.IsFinished() {
		s.Step(callback)
	}
}

var _ Scheduler = (*SchedulerConstant)(nil)
