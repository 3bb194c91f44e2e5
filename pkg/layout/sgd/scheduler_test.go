package sgd

import (
	"math"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/errors"
)

// schedulerFamilies constructs each schedule family through a uniform
// signature so the shared protocol tests can iterate over all of them.
var schedulerFamilies = []struct {
	name string
	make func(tMax int, etaMin, etaMax float64) (Scheduler, error)
}{
	{"constant", func(tMax int, etaMin, etaMax float64) (Scheduler, error) {
		return NewSchedulerConstant(tMax, etaMin, etaMax)
	}},
	{"linear", func(tMax int, etaMin, etaMax float64) (Scheduler, error) {
		return NewSchedulerLinear(tMax, etaMin, etaMax)
	}},
	{"quadratic", func(tMax int, etaMin, etaMax float64) (Scheduler, error) {
		return NewSchedulerQuadratic(tMax, etaMin, etaMax)
	}},
	{"exponential", func(tMax int, etaMin, etaMax float64) (Scheduler, error) {
		return NewSchedulerExponential(tMax, etaMin, etaMax)
	}},
	{"reciprocal", func(tMax int, etaMin, etaMax float64) (Scheduler, error) {
		return NewSchedulerReciprocal(tMax, etaMin, etaMax)
	}},
}

// collect runs the scheduler to completion and records every eta.
func collect(s Scheduler) []float64 {
	var etas []float64
	s.Run(func(eta float64) { etas = append(etas, eta) })
	return etas
}

func TestSchedulerEndpointsAndMonotonicity(t *testing.T) {
	const (
		tMax   = 50
		etaMin = 0.1
		etaMax = 10.0
	)
	for _, family := range schedulerFamilies {
		t.Run(family.name, func(t *testing.T) {
			s, err := family.make(tMax, etaMin, etaMax)
			if err != nil {
				t.Fatalf("make(%d, %v, %v): %v", tMax, etaMin, etaMax, err)
			}
			etas := collect(s)
			if len(etas) != tMax {
				t.Fatalf("Run emitted %d etas, want %d", len(etas), tMax)
			}
			if etas[0] != etaMax {
				t.Errorf("first eta = %v, want etaMax %v", etas[0], etaMax)
			}
			wantLast := etaMin
			if family.name == "constant" {
				wantLast = etaMax
			}
			if math.Abs(etas[tMax-1]-wantLast) > 1e-9 {
				t.Errorf("last eta = %v, want %v", etas[tMax-1], wantLast)
			}
			for i := 1; i < len(etas); i++ {
				if etas[i] > etas[i-1]+1e-12 {
					t.Fatalf("eta increased at step %d: %v -> %v", i, etas[i-1], etas[i])
				}
			}
			if !s.IsFinished() {
				t.Error("IsFinished() = false after Run")
			}
		})
	}
}

func TestSchedulerKnownValues(t *testing.T) {
	// tMax 3 from etaMin 0.1 to etaMax 10; samples at t = 0, 1, 2.
	want := map[string][]float64{
		"constant":    {10, 10, 10},
		"linear":      {10, 5.05, 0.1},
		"quadratic":   {10, 3.025, 0.1},
		"exponential": {10, 1, 0.1},
		"reciprocal":  {10, 10 / 50.5, 0.1},
	}
	for _, family := range schedulerFamilies {
		t.Run(family.name, func(t *testing.T) {
			s, err := family.make(3, 0.1, 10)
			if err != nil {
				t.Fatalf("make(3, 0.1, 10): %v", err)
			}
			etas := collect(s)
			expected := want[family.name]
			if len(etas) != len(expected) {
				t.Fatalf("Run emitted %d etas, want %d", len(etas), len(expected))
			}
			for i, e := range expected {
				if math.Abs(etas[i]-e) > 1e-9 {
					t.Errorf("eta[%d] = %v, want %v", i, etas[i], e)
				}
			}
		})
	}
}

func TestSchedulerSingleIteration(t *testing.T) {
	for _, family := range schedulerFamilies {
		t.Run(family.name, func(t *testing.T) {
			s, err := family.make(1, 0.5, 2)
			if err != nil {
				t.Fatalf("make(1, 0.5, 2): %v", err)
			}
			etas := collect(s)
			if len(etas) != 1 || etas[0] != 2 {
				t.Errorf("single-iteration etas = %v, want [2]", etas)
			}
		})
	}
}

func TestSchedulerEqualBounds(t *testing.T) {
	for _, family := range schedulerFamilies {
		t.Run(family.name, func(t *testing.T) {
			s, err := family.make(5, 1, 1)
			if err != nil {
				t.Fatalf("make(5, 1, 1): %v", err)
			}
			for i, eta := range collect(s) {
				if eta != 1 {
					t.Errorf("eta[%d] = %v, want exactly 1 for equal bounds", i, eta)
				}
			}
		})
	}
}

func TestSchedulerStepRunInterleave(t *testing.T) {
	for _, family := range schedulerFamilies {
		t.Run(family.name, func(t *testing.T) {
			s, err := family.make(10, 0.1, 10)
			if err != nil {
				t.Fatalf("make(10, 0.1, 10): %v", err)
			}
			var etas []float64
			for i := 0; i < 3; i++ {
				s.Step(func(eta float64) { etas = append(etas, eta) })
			}
			s.Run(func(eta float64) { etas = append(etas, eta) })

			fresh, err := family.make(10, 0.1, 10)
			if err != nil {
				t.Fatalf("make(10, 0.1, 10): %v", err)
			}
			want := collect(fresh)
			if len(etas) != len(want) {
				t.Fatalf("interleaved schedule emitted %d etas, want %d", len(etas), len(want))
			}
			for i := range want {
				if etas[i] != want[i] {
					t.Errorf("eta[%d] = %v, want %v", i, etas[i], want[i])
				}
			}

			// A finished scheduler must not emit again.
			s.Run(func(eta float64) { etas = append(etas, eta) })
			if len(etas) != len(want) {
				t.Errorf("Run on finished scheduler emitted %d extra etas", len(etas)-len(want))
			}
		})
	}
}

func TestSchedulerValidation(t *testing.T) {
	tests := []struct {
		name   string
		tMax   int
		etaMin float64
		etaMax float64
	}{
		{"zero iterations", 0, 0.1, 1},
		{"negative iterations", -3, 0.1, 1},
		{"zero etaMin", 10, 0, 1},
		{"negative etaMin", 10, -0.5, 1},
		{"NaN etaMin", 10, math.NaN(), 1},
		{"infinite etaMin", 10, math.Inf(1), 1},
		{"etaMax below etaMin", 10, 1, 0.5},
		{"NaN etaMax", 10, 0.1, math.NaN()},
		{"infinite etaMax", 10, 0.1, math.Inf(1)},
	}
	for _, family := range schedulerFamilies {
		for _, tt := range tests {
			t.Run(family.name+"/"+tt.name, func(t *testing.T) {
				_, err := family.make(tt.tMax, tt.etaMin, tt.etaMax)
				if err == nil {
					t.Fatalf("make(%d, %v, %v) succeeded, want error",
						tt.tMax, tt.etaMin, tt.etaMax)
				}
				if code := errors.GetCode(err); code != errors.ErrCodeInvalidParameter {
					t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidParameter)
				}
			})
		}
	}
}
