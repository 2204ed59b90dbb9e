package neural

import (
	"bytes"
	"log"
	"math"
	"testing"

	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/oracle"
)

// S4: an oracle whose lnq matches the exact Boltzmann log-density at beta
// makes lnAlpha collapse to ~0 for every trial, so acceptance should be
// effectively 100%.
func TestIdentityOracleAcceptsEveryProposal(t *testing.T) {
	c := lattice.NewTorus(3, 1.0)
	beta := 1.0

	n := 200
	props := make([]oracle.Proposal, n)
	s := allUp(9)
	for i := 0; i < n; i++ {
		e := energy.Total(s, c)
		props[i] = oracle.Proposal{S: cloneConfig(s), LnQ: energy.Boltzmann(e, beta)}
	}
	src := oracle.NewSliceSource(props)

	res, err := Run(Config{Beta: beta, Steps: 50, SaveEvery: 1, Seed: 1}, c, src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.AcceptanceRate < 0.99 {
		t.Fatalf("acceptance rate = %v, want ~1 for an identity oracle", res.AcceptanceRate)
	}
}

// S6: every odd-indexed proposal has lnq = -Inf; those iterations must not
// change the chain state or count toward acceptance.
func TestSkipSemanticsOddIndicesDoNotAdvanceChain(t *testing.T) {
	c := lattice.NewTorus(2, 1.0)
	beta := 0.5

	n := 40
	props := make([]oracle.Proposal, n)
	for i := 0; i < n; i++ {
		lnq := -2.0
		s := allUp(4)
		if i%2 == 1 {
			lnq = math.Inf(-1)
		}
		props[i] = oracle.Proposal{S: s, LnQ: lnq}
	}
	src := oracle.NewSliceSource(props)

	res, err := Run(Config{Beta: beta, Steps: 19, SaveEvery: 1, Seed: 5}, c, src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Steps*SaveEvery-1 = 18 trials consume proposals 1..18; only the nine
	// even-indexed ones can be evaluated. Each odd-indexed skip leaves the
	// chain unchanged and emits nothing, so the record count can't exceed
	// the number of even-indexed trials.
	evenTrials := (19*1 - 1) / 2
	if len(res.Records) > evenTrials {
		t.Fatalf("emitted %d records, want at most %d (one per even-indexed trial)", len(res.Records), evenTrials)
	}
}

func TestSkipCountAndLoggerRecordNonFiniteTrials(t *testing.T) {
	c := lattice.NewTorus(2, 1.0)
	beta := 0.5

	n := 20
	props := make([]oracle.Proposal, n)
	for i := 0; i < n; i++ {
		lnq := -2.0
		if i%2 == 1 {
			lnq = math.Inf(-1)
		}
		props[i] = oracle.Proposal{S: allUp(4), LnQ: lnq}
	}
	src := oracle.NewSliceSource(props)

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	res, err := Run(Config{Beta: beta, Steps: 9, SaveEvery: 1, Seed: 5, Logger: logger}, c, src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.SkipCount == 0 {
		t.Fatal("SkipCount = 0, want at least one skip from the -Inf lnq proposals")
	}
	if buf.Len() == 0 {
		t.Fatal("expected the logger to receive at least one skip line")
	}
}

func TestOracleExhaustionIsFatal(t *testing.T) {
	c := lattice.NewTorus(2, 1.0)
	props := []oracle.Proposal{{S: allUp(4), LnQ: -1.0}}
	src := oracle.NewSliceSource(props)

	_, err := Run(Config{Beta: 1.0, Steps: 100, SaveEvery: 1, Seed: 1}, c, src)
	if err != oracle.ErrExhausted {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
}

func allUp(n int) []int8 {
	s := make([]int8, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

func cloneConfig(s []int8) []int8 {
	out := make([]int8, len(s))
	copy(out, s)
	return out
}
