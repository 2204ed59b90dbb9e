package hybrid

import (
	"log"

	"isingmcmc/chain"
	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/mcrand"
	"isingmcmc/oracle"
	"isingmcmc/spin"
)

// SequentialConfig bundles a hybrid-sequential chain's run parameters.
// Proposal kind is deterministic by step index: a neural proposal every
// LenBlock-th step, local otherwise (spec §4.5). Logger, if non-nil,
// receives one line per skipped step.
type SequentialConfig struct {
	Beta      float64
	Steps     int
	SaveEvery int
	LenBlock  int
	Seed      int64
	Logger    *log.Logger
}

// RunSequential implements spec §4.5: unlike the stochastic driver, a
// neural step re-evaluates accepted_lnq against the density oracle before
// computing the acceptance ratio, since the chain may have drifted through
// local moves since the density was last evaluated at this exact state.
// Because proposal kind is a deterministic function of step index rather
// than a live mixture, the acceptance ratio never needs the mixed-kernel
// correction hybrid-stochastic requires: local steps use the plain
// symmetric-proposal ratio, neural steps use the plain independent-proposal
// ratio.
func RunSequential(cfg SequentialConfig, c *lattice.Couplings, src oracle.Source, density oracle.DensityOracle) (Result, error) {
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
	var perm []int
	var permPos int
	var skipCount int64

	for step := 0; step < cfg.Steps-1; step++ {
		var trial spin.Configuration
		var trialLnQ, trialE, trialLnPi, lnAlpha float64
		var kind chain.Kind

		if step%cfg.LenBlock == 0 {
			kind = chain.Neural
			perm = rng.Perm(n)
			permPos = 0
			p, err := src.Next()
			if err != nil {
				return Result{
					Records:          records,
					AcceptanceRate:   counters.Rate(),
					NeuralAfterLocal: counters.NeuralAfterLocal,
					SkipCount:        skipCount,
				}, err
			}
			if !finite(p.LnQ) {
				skipCount++
				logSkip(cfg.Logger, step, "lnq")
				continue
			}
			trial, trialLnQ = p.S, p.LnQ
			trialE = energy.Total(trial, c)
			if !finite(trialE) {
				skipCount++
				logSkip(cfg.Logger, step, "energy")
				continue
			}
			trialLnPi = energy.Boltzmann(trialE, cfg.Beta)
			if !finite(trialLnPi) {
				skipCount++
				logSkip(cfg.Logger, step, "lnpi")
				continue
			}
			acceptedLnQ = density.LogQ(accepted)
			if !finite(acceptedLnQ) {
				skipCount++
				logSkip(cfg.Logger, step, "accepted-lnq")
				continue
			}
			lnAlpha = trialLnPi - acceptedLnPi + acceptedLnQ - trialLnQ
		} else {
			kind = chain.Local
			if permPos >= len(perm) {
				perm = rng.Perm(n)
				permPos = 0
			}
			k := perm[permPos]
			permPos++
			trial = spin.Flip(accepted, k)
			dh := energy.DeltaH(k, accepted, c)
			trialE = acceptedE + dh
			if !finite(trialE) {
				skipCount++
				logSkip(cfg.Logger, step, "energy")
				continue
			}
			trialLnPi = energy.Boltzmann(trialE, cfg.Beta)
			if !finite(trialLnPi) {
				skipCount++
				logSkip(cfg.Logger, step, "lnpi")
				continue
			}
			lnAlpha = trialLnPi - acceptedLnPi
		}

		if !finite(lnAlpha) {
			skipCount++
			logSkip(cfg.Logger, step, "lnalpha")
			continue
		}

		counters.ProposeKind(kind)
		if accept(rng, lnAlpha) {
			counters.AcceptKind(kind, lastKind)
			accepted, acceptedE, acceptedLnPi = trial, trialE, trialLnPi
			if kind == chain.Neural {
				acceptedLnQ = trialLnQ
			}
			lastKind = kind
		}

		if (step+1)%cfg.SaveEvery == 0 {
			records = append(records, Record{S: spin.Clone(accepted), E: acceptedE, Kind: lastKind})
		}
	}

	return Result{
		Records:          records,
		AcceptanceRate:   counters.Rate(),
		NeuralAfterLocal: counters.NeuralAfterLocal,
		SkipCount:        skipCount,
	}, nil
}
