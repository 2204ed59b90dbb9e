package energy

import (
	"math"
	"testing"

	"isingmcmc/lattice"
)

// 2x2 torus, all J_ij = 1, all spins up: spec §8 scenario S1.
func TestTotalAllUpTwoByTwoTorus(t *testing.T) {
	c := lattice.NewTorus(2, 1.0)
	s := []int8{1, 1, 1, 1}
	if got := Total(s, c); got != 8 {
		t.Fatalf("Total = %v, want 8", got)
	}
}

func TestDeltaHMatchesRecomputedTotal(t *testing.T) {
	c := lattice.NewTorus(2, 1.0)
	s := []int8{1, 1, 1, 1}

	before := Total(s, c)
	dh := DeltaH(0, s, c)

	flipped := make([]int8, len(s))
	copy(flipped, s)
	flipped[0] = -flipped[0]
	after := Total(flipped, c)

	if math.Abs((after-before)-dh) > 1e-9 {
		t.Fatalf("DeltaH = %v, want Total(flipped)-Total(s) = %v", dh, after-before)
	}
}

// Invariant 3 ("delta_h correctness"): for an arbitrary configuration and
// site, flipping and recomputing from scratch must agree with DeltaH, on any
// lattice shape, not just the worked example.
func TestDeltaHCorrectnessAcrossSitesAndConfigurations(t *testing.T) {
	c := lattice.NewTorus(3, 1.0)
	configs := [][]int8{
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, -1, 1, -1, 1, -1, 1, -1, 1},
		{-1, -1, -1, 1, 1, 1, -1, -1, -1},
	}
	for ci, s := range configs {
		for k := 0; k < c.N; k++ {
			before := Total(s, c)
			dh := DeltaH(k, s, c)

			flipped := make([]int8, len(s))
			copy(flipped, s)
			flipped[k] = -flipped[k]
			after := Total(flipped, c)

			if math.Abs((after-before)-dh) > 1e-9 {
				t.Fatalf("config %d site %d: DeltaH = %v, want %v", ci, k, dh, after-before)
			}
		}
	}
}

func TestBoltzmann(t *testing.T) {
	got := Boltzmann(4.0, 0.5)
	if got != -2.0 {
		t.Fatalf("Boltzmann(4, 0.5) = %v, want -2", got)
	}
}
