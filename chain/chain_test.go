package chain

import (
	"math"
	"testing"

	"isingmcmc/spin"
)

func TestNewSetsLnPiAndLeavesLnQNaN(t *testing.T) {
	s := spin.Configuration{1, 1, -1, 1}
	st := New(s, 4.0, 0.5)
	if st.LnPi != -2.0 {
		t.Fatalf("LnPi = %v, want -2", st.LnPi)
	}
	if !math.IsNaN(st.LnQ) {
		t.Fatalf("LnQ = %v, want NaN", st.LnQ)
	}
}

func TestCloneIsIndependentOfBackingSlice(t *testing.T) {
	s := spin.Configuration{1, 1, -1, 1}
	st := New(s, 4.0, 0.5)
	clone := st.Clone()
	clone.S[0] = -1
	if st.S[0] != 1 {
		t.Fatal("mutating clone's spins affected the original state")
	}
}

func TestCountersRates(t *testing.T) {
	var c Counters
	c.ProposeKind(Local)
	c.ProposeKind(Local)
	c.ProposeKind(Neural)
	c.AcceptKind(Local, Local)
	c.AcceptKind(Neural, Local)

	if c.Rate() != 2.0/3.0 {
		t.Fatalf("Rate() = %v, want 2/3", c.Rate())
	}
	if c.RateByKind(Local) != 0.5 {
		t.Fatalf("RateByKind(Local) = %v, want 0.5", c.RateByKind(Local))
	}
	if c.RateByKind(Neural) != 1.0 {
		t.Fatalf("RateByKind(Neural) = %v, want 1", c.RateByKind(Neural))
	}
	if c.NeuralAfterLocal != 1 {
		t.Fatalf("NeuralAfterLocal = %d, want 1", c.NeuralAfterLocal)
	}
}

func TestRateOfEmptyCountersIsZero(t *testing.T) {
	var c Counters
	if c.Rate() != 0 {
		t.Fatalf("Rate() on empty counters = %v, want 0", c.Rate())
	}
	if c.RateByKind(Neural) != 0 {
		t.Fatalf("RateByKind(Neural) on empty counters = %v, want 0", c.RateByKind(Neural))
	}
}
