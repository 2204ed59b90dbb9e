package exchange

import (
	"math"
	"testing"

	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/oracle"
	"isingmcmc/spin"
)

func fixtureRBM(n int) *oracle.ReferenceRBM {
	nh := 3
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, nh)
		for j := range w[i] {
			w[i][j] = 0.1 * float64((i+j)%3-1)
		}
	}
	bv := make([]float64, n)
	bh := make([]float64, nh)
	return oracle.NewReferenceRBM(w, bv, bh, 123)
}

func TestRunEmitsValidConfigurationsForBothChains(t *testing.T) {
	c := lattice.NewTorus(3, 1.0)
	rbm := fixtureRBM(9)

	res := Run(Config{Spins: 9, Beta: 1.0, Steps: 200, SaveEvery: 5, Seed: 4}, c, rbm)

	if len(res.Records) != 40 {
		t.Fatalf("len(Records) = %d, want 40", len(res.Records))
	}
	for i, r := range res.Records {
		if !spin.Valid(r.A) || !spin.Valid(r.B) {
			t.Fatalf("record %d: invalid spin domain A=%v B=%v", i, r.A, r.B)
		}
		wantA := energy.Total(r.A, c)
		if math.Abs(r.EA-wantA) > 1e-9*math.Max(1, math.Abs(wantA)) {
			t.Fatalf("record %d: EA = %v, want %v", i, r.EA, wantA)
		}
		wantB := energy.Total(r.B, c)
		if math.Abs(r.EB-wantB) > 1e-9*math.Max(1, math.Abs(wantB)) {
			t.Fatalf("record %d: EB = %v, want %v", i, r.EB, wantB)
		}
	}
}

func TestRunReportsSeparateSingleFlipAndSwapRates(t *testing.T) {
	c := lattice.NewTorus(2, 1.0)
	rbm := fixtureRBM(4)

	res := Run(Config{Spins: 4, Beta: 0.5, Steps: 100, SaveEvery: 10, Seed: 8}, c, rbm)

	if res.SingleFlipRate < 0 || res.SingleFlipRate > 1 {
		t.Fatalf("SingleFlipRate out of range: %v", res.SingleFlipRate)
	}
	if res.SwapRate < 0 || res.SwapRate > 1 {
		t.Fatalf("SwapRate out of range: %v", res.SwapRate)
	}
}
