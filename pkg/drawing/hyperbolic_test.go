package drawing

import (
	"math"
	"testing"

	"github.com/matzehuels/sgdraw/pkg/rng"
)

func TestNewHyperbolic2D(t *testing.T) {
	d := NewHyperbolic2D(4)
	for i := 0; i < 4; i++ {
		p, err := d.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", i, err)
		}
		if got := math.Hypot(p[0], p[1]); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("node %d radius = %v, want 0.5", i, got)
		}
	}
}

func TestHyperbolicDistance(t *testing.T) {
	d := NewHyperbolic2D(2)
	mustSet(t, d, 0, []float64{0, 0})
	mustSet(t, d, 1, []float64{0.6, 0})

	// From the origin the metric reduces to 2·artanh(r): ln 4 for r = 0.6.
	_, dist := d.Delta(0, 1, nil)
	if want := math.Log(4); math.Abs(dist-want) > 1e-9 {
		t.Errorf("Delta() dist = %v, want %v", dist, want)
	}

	// Symmetric.
	_, back := d.Delta(1, 0, nil)
	if math.Abs(dist-back) > 1e-12 {
		t.Errorf("distance asymmetric: %v vs %v", dist, back)
	}
}

func TestHyperbolicDeltaDirection(t *testing.T) {
	d := NewHyperbolic2D(2)
	mustSet(t, d, 0, []float64{0.3, 0})
	mustSet(t, d, 1, []float64{-0.3, 0})

	delta, dist := d.Delta(0, 1, nil)
	if dist <= 0 {
		t.Fatalf("dist = %v, want > 0", dist)
	}
	// Direction from node 1 toward node 0 points along +x, scaled to dist.
	if delta[0] <= 0 || math.Abs(delta[1]) > 1e-12 {
		t.Errorf("Delta() = %v, want positive x direction", delta)
	}
	if got := math.Hypot(delta[0], delta[1]); math.Abs(got-dist) > 1e-9 {
		t.Errorf("|Delta()| = %v, want %v", got, dist)
	}
}

func TestHyperbolicCoincidentNodes(t *testing.T) {
	d := NewHyperbolic2D(2)
	mustSet(t, d, 0, []float64{0.25, 0.25})
	mustSet(t, d, 1, []float64{0.25, 0.25})

	delta, dist := d.Delta(0, 1, nil)
	if dist != 0 || delta[0] != 0 || delta[1] != 0 {
		t.Errorf("coincident Delta() = %v/%v, want zeros", delta, dist)
	}
}

func TestHyperbolicRimClamp(t *testing.T) {
	d := NewHyperbolic2D(1)

	// Setting a point outside the disk pulls it back to radius 1-1e-2.
	mustSet(t, d, 0, []float64{2, 0})
	p, _ := d.Get(0)
	if got := math.Hypot(p[0], p[1]); math.Abs(got-0.99) > 1e-9 {
		t.Errorf("clamped radius = %v, want 0.99", got)
	}

	// A huge move cannot escape either.
	d.Move(0, []float64{1e6, 0}, 1)
	p, _ = d.Get(0)
	if got := math.Hypot(p[0], p[1]); got >= 1 {
		t.Errorf("radius after huge move = %v, want < 1", got)
	}
}

func TestHyperbolicMoveConformal(t *testing.T) {
	d := NewHyperbolic2D(1)
	mustSet(t, d, 0, []float64{0, 0})

	// At the origin the conformal factor is 1/2.
	d.Move(0, []float64{1, 0}, 0.2)
	p, _ := d.Get(0)
	if math.Abs(p[0]-0.1) > 1e-12 || p[1] != 0 {
		t.Errorf("after Move, point = %v, want [0.1 0]", p)
	}
}

func TestHyperbolicRandomInsideDisk(t *testing.T) {
	d := NewHyperbolic2DRandom(50, rng.SeedFrom(3))
	for i := 0; i < d.Len(); i++ {
		p, _ := d.Get(i)
		if math.Hypot(p[0], p[1]) >= 1 {
			t.Errorf("node %d = %v outside the open disk", i, p)
		}
	}
}
