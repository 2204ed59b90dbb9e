// Package local implements the baseline single-spin-flip Metropolis chain
// (spec §4.2): the only driver that never consults an oracle.
package local

import (
	"math"

	"isingmcmc/chain"
	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/mcrand"
	"isingmcmc/spin"
)

// Config bundles a local chain's run parameters.
type Config struct {
	Spins  int
	Beta   float64
	Steps  int
	Sweeps int // 0 means one attempt per outer step
	BurnIn int
	Seed   int64
}

// Record is one emitted (configuration, energy) pair.
type Record struct {
	S spin.Configuration
	E float64
}

// Result is what Run returns on success: the emitted trajectory plus the
// summary statistics spec §7's end-of-run report describes.
type Result struct {
	Records        []Record
	AcceptanceRate float64
	MeanEnergy     float64
	StdEnergy      float64
	MinEnergy      float64
}

// Run steps a local chain to completion per spec §4.2: Steps+BurnIn outer
// iterations, each consisting of Sweeps*Spins (or 1, if Sweeps==0)
// single-flip attempts, emitting a deep copy of the state after every outer
// iteration past BurnIn.
func Run(cfg Config, c *lattice.Couplings) Result {
	rng := mcrand.New(cfg.Seed)

	s := make(spin.Configuration, cfg.Spins)
	for i := range s {
		if rng.Intn(2) == 0 {
			s[i] = spin.Down
		} else {
			s[i] = spin.Up
		}
	}

	st := chain.New(s, energy.Total(s, c), cfg.Beta)
	st.KindLast = chain.Local

	inner := 1
	if cfg.Sweeps > 0 {
		inner = cfg.Sweeps * cfg.Spins
	}

	var records []Record
	for outer := 0; outer < cfg.Steps+cfg.BurnIn; outer++ {
		for i := 0; i < inner; i++ {
			step(st, rng, c, cfg.Beta, cfg.Spins)
		}
		if outer >= cfg.BurnIn {
			records = append(records, Record{S: spin.Clone(st.S), E: st.E})
		}
	}

	return summarize(records, st.Counters.Rate())
}

// step performs one single-spin-flip attempt, mutating st in place.
func step(st *chain.State, rng *mcrand.Source, c *lattice.Couplings, beta float64, spins int) {
	k := rng.Intn(spins)
	dh := energy.DeltaH(k, st.S, c)

	st.Counters.ProposeKind(chain.Local)
	if dh < 0.0 || rng.Uniform() < math.Exp(-beta*dh) {
		st.S[k] = -st.S[k]
		st.E += dh
		st.LnPi = -beta * st.E
		st.KindLast = chain.Local
		st.Counters.AcceptKind(chain.Local, chain.Local)
	}
}

func summarize(records []Record, acceptanceRate float64) Result {
	n := len(records)
	if n == 0 {
		return Result{AcceptanceRate: acceptanceRate}
	}

	var sum float64
	min := records[0].E
	for _, r := range records {
		sum += r.E
		if r.E < min {
			min = r.E
		}
	}
	mean := sum / float64(n)

	var variance float64
	if n > 1 {
		var ss float64
		for _, r := range records {
			d := r.E - mean
			ss += d * d
		}
		variance = ss / float64(n-1)
	}

	return Result{
		Records:        records,
		AcceptanceRate: acceptanceRate,
		MeanEnergy:     mean,
		StdEnergy:      math.Sqrt(variance),
		MinEnergy:      min,
	}
}
