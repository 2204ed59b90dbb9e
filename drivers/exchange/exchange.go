// Package exchange implements the RBM-coupled exchange driver (spec §4.6):
// a local chain and an RBM Gibbs chain stepped in lockstep, with periodic
// swap proposals between the two.
package exchange

import (
	"math"

	"isingmcmc/chain"
	"isingmcmc/energy"
	"isingmcmc/lattice"
	"isingmcmc/mcrand"
	"isingmcmc/oracle"
	"isingmcmc/spin"
)

// warmupSteps mirrors spec §4.6's "first 10 steps, chain B is re-seeded to
// mirror chain A".
const warmupSteps = 10

// Config bundles an exchange chain's run parameters.
type Config struct {
	Spins     int
	Beta      float64
	Steps     int
	SaveEvery int
	Seed      int64
}

// Record is one emitted pair of states, one per sub-chain, at a shared step.
type Record struct {
	A, B spin.Configuration
	EA   float64
	EB   float64
}

// Result is what Run returns on success.
type Result struct {
	Records        []Record
	SingleFlipRate float64
	SwapRate       float64
}

// Run steps the exchange chain to completion per spec §4.6.
func Run(cfg Config, c *lattice.Couplings, rbm oracle.RBMOracle) Result {
	rng := mcrand.New(cfg.Seed)

	a := make(spin.Configuration, cfg.Spins)
	for i := range a {
		if rng.Intn(2) == 0 {
			a[i] = spin.Down
		} else {
			a[i] = spin.Up
		}
	}
	eA := energy.Total(a, c)

	b := spin.ToBinary(a)

	var singleCounters, swapCounters chain.Counters
	var records []Record

	for step := 0; step < cfg.Steps; step++ {
		if step < warmupSteps {
			b = spin.ToBinary(a)
		}

		// Chain A: one local Metropolis flip.
		k := rng.Intn(cfg.Spins)
		dh := energy.DeltaH(k, a, c)
		singleCounters.ProposeKind(chain.Local)
		if dh < 0.0 || rng.Uniform() < math.Exp(-cfg.Beta*dh) {
			a[k] = -a[k]
			eA += dh
			singleCounters.AcceptKind(chain.Local, chain.Local)
		}

		// Chain B: one Gibbs step under the RBM.
		b = rbm.GibbsStep(b)

		// Swap proposal.
		bSigned := spin.FromBinary(b)
		eB := energy.Total(bSigned, c)

		lnPiAatA := energy.Boltzmann(eA, cfg.Beta)
		lnPiAatB := energy.Boltzmann(eB, cfg.Beta)
		fA := -rbm.FreeEnergy(spin.ToBinary(a))
		fB := -rbm.FreeEnergy(b)

		lnAlphaSwap := (lnPiAatB - lnPiAatA) + (fA - fB)
		swapCounters.ProposeKind(chain.Local)
		if lnAlphaSwap >= 0.0 || math.Log(rng.Uniform()) < lnAlphaSwap {
			a, bSigned = bSigned, a
			eA, eB = eB, eA
			b = spin.ToBinary(bSigned)
			swapCounters.AcceptKind(chain.Local, chain.Local)
		}

		if (step+1)%cfg.SaveEvery == 0 {
			records = append(records, Record{
				A:  spin.Clone(a),
				B:  spin.Clone(bSigned),
				EA: eA,
				EB: eB,
			})
		}
	}

	return Result{
		Records:        records,
		SingleFlipRate: singleCounters.Rate(),
		SwapRate:       swapCounters.Rate(),
	}
}
