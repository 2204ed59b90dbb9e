// Package hybrid implements the two mixed local/neural drivers: a
// per-step stochastic choice between kernels (spec §4.4) and a deterministic
// block-sequential schedule (spec §4.5). Both share the mixed-kernel
// Metropolis machinery defined here.
package hybrid

import (
	"log"
	"math"

	"isingmcmc/chain"
	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/mcrand"
	"isingmcmc/oracle"
	"isingmcmc/spin"
)

// MaxSteps is the safety bound spec §4.4 requires: 10^7 iterations halt the
// loop early even if Steps asks for more.
const MaxSteps = 10_000_000

// Record is one emitted (configuration, energy, kind) triple.
type Record struct {
	S    spin.Configuration
	E    float64
	Kind chain.Kind
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// downsample keeps every strideth record starting at index 0.
func downsample(records []Record, stride int) []Record {
	if stride <= 1 {
		return records
	}
	out := make([]Record, 0, len(records)/stride+1)
	for i := 0; i < len(records); i += stride {
		out = append(out, records[i])
	}
	return out
}

// mixedLogRatio computes spec §4.4's log acceptance ratio for the mixed
// local/neural proposal kernel. When the trial differs from the current
// state by exactly one spin, both proposal paths (local and neural) could
// have produced it, so both ln q_mix terms are computed explicitly;
// otherwise only the neural path could have produced it and the local
// term cancels out of both ratios.
func mixedLogRatio(
	accepted, trial spin.Configuration,
	accLnQ, trialLnQ, accLnPi, trialLnPi float64,
	probLocal float64,
	n int,
) (float64, bool) {
	if spin.Hamming(accepted, trial) == 1 {
		lnQMixReverse := math.Log(probLocal/float64(n) + (1-probLocal)*math.Exp(accLnQ))
		if !finite(lnQMixReverse) {
			return 0, false
		}
		lnQMixForward := math.Log(probLocal/float64(n) + (1-probLocal)*math.Exp(trialLnQ))
		if !finite(lnQMixForward) {
			return 0, false
		}
		return trialLnPi - accLnPi + lnQMixReverse - lnQMixForward, true
	}
	return trialLnPi - accLnPi + accLnQ - trialLnQ, true
}

// logSkip records one non-finite trial (spec §7: skips are counted but not
// fatal, logged at verbose level only). logger may be nil, in which case the
// skip is still counted by the caller but nothing is printed.
func logSkip(logger *log.Logger, step int, reason string) {
	if logger != nil {
		logger.Printf("hybrid: skipping step %d, non-finite %s", step, reason)
	}
}

func accept(rng *mcrand.Source, lnAlpha float64) bool {
	if lnAlpha >= 0.0 {
		return true
	}
	return math.Log(rng.Uniform()) < lnAlpha
}

// StochasticConfig bundles a hybrid-stochastic chain's run parameters.
// Logger, if non-nil, receives one line per skipped step.
type StochasticConfig struct {
	Beta      float64
	Steps     int
	SaveEvery int
	ProbLocal float64
	Seed      int64
	Logger    *log.Logger
}

// Result is what both hybrid drivers return on success.
type Result struct {
	Records          []Record
	AcceptanceRate   float64
	NeuralAfterLocal int64
	SkipCount        int64
}

// RunStochastic implements spec §4.4: at each step, a Bernoulli draw
// chooses between a neural proposal (pulled from src) and a local
// single-spin flip (scored against density), with the mixed-kernel
// acceptance ratio correcting for the asymmetric mixture.
func RunStochastic(cfg StochasticConfig, c *lattice.Couplings, src oracle.Source, density oracle.DensityOracle) (Result, error) {
	rng := mcrand.New(cfg.Seed)
	n := c.N

	first, err := src.Next()
	if err != nil {
		return Result{}, err
	}
	accepted := first.S
	acceptedLnQ := first.LnQ
	acceptedE := energy.Total(accepted, c)
	acceptedLnPi := energy.Boltzmann(acceptedE, cfg.Beta)
	var lastKind = chain.Neural

	var records []Record
	var counters chain.Counters
	var skipCount int64
	total := cfg.Steps - 1
	if total > MaxSteps {
		total = MaxSteps
	}

	for i := 0; i < total; i++ {
		var trial spin.Configuration
		var trialLnQ, trialE, trialLnPi float64
		var kind chain.Kind

		if rng.Uniform() <= 1-cfg.ProbLocal {
			kind = chain.Neural
			p, err := src.Next()
			if err != nil {
				return Result{
					Records:          downsample(records, cfg.SaveEvery),
					AcceptanceRate:   counters.Rate(),
					NeuralAfterLocal: counters.NeuralAfterLocal,
					SkipCount:        skipCount,
				}, err
			}
			if !finite(p.LnQ) {
				skipCount++
				logSkip(cfg.Logger, i, "lnq")
				continue
			}
			trial, trialLnQ = p.S, p.LnQ
			trialE = energy.Total(trial, c)
			if !finite(trialE) {
				skipCount++
				logSkip(cfg.Logger, i, "energy")
				continue
			}
			trialLnPi = energy.Boltzmann(trialE, cfg.Beta)
			if !finite(trialLnPi) {
				skipCount++
				logSkip(cfg.Logger, i, "lnpi")
				continue
			}
		} else {
			kind = chain.Local
			k := rng.Intn(n)
			trial = spin.Flip(accepted, k)
			dh := energy.DeltaH(k, accepted, c)
			trialE = acceptedE + dh
			if !finite(trialE) {
				skipCount++
				logSkip(cfg.Logger, i, "energy")
				continue
			}
			trialLnQ = density.LogQ(trial)
			if !finite(trialLnQ) {
				skipCount++
				logSkip(cfg.Logger, i, "lnq")
				continue
			}
			trialLnPi = energy.Boltzmann(trialE, cfg.Beta)
			if !finite(trialLnPi) {
				skipCount++
				logSkip(cfg.Logger, i, "lnpi")
				continue
			}
		}

		lnAlpha, valid := mixedLogRatio(accepted, trial, acceptedLnQ, trialLnQ, acceptedLnPi, trialLnPi, cfg.ProbLocal, n)
		if !valid || !finite(lnAlpha) {
			skipCount++
			logSkip(cfg.Logger, i, "lnalpha")
			continue
		}

		counters.ProposeKind(kind)
		if accept(rng, lnAlpha) {
			counters.AcceptKind(kind, lastKind)
			accepted, acceptedLnQ, acceptedE, acceptedLnPi = trial, trialLnQ, trialE, trialLnPi
			lastKind = kind
		}

		records = append(records, Record{S: spin.Clone(accepted), E: acceptedE, Kind: lastKind})
	}

	return Result{
		Records:          downsample(records, cfg.SaveEvery),
		AcceptanceRate:   counters.Rate(),
		NeuralAfterLocal: counters.NeuralAfterLocal,
		SkipCount:        skipCount,
	}, nil
}
