// Package oracle defines the external collaborators spec §6 names: a
// proposal stream from a learned autoregressive generator, a density
// evaluator for that same generator, and a Gibbs/free-energy interface onto
// a Restricted Boltzmann Machine. The core only ever sees these narrow
// interfaces; training and inference of the underlying models is out of
// scope (spec §1).
package oracle

import "isingmcmc/spin"

// Proposal is one (configuration, log q(s)) pair pulled from a generator.
// LnQ may be non-finite; consumers are responsible for skipping those per
// spec §4.7.
type Proposal struct {
	S   spin.Configuration
	LnQ float64
}

// Source is a finite pull iterator over prefetched proposals (spec §6,
// ProposalOracle.next/prefetch). Next returns ErrExhausted once drained.
type Source interface {
	Next() (Proposal, error)
	// Prefetch requests that at least n further proposals be buffered
	// ahead of the next Next call. Implementations backed by an
	// already-finite in-memory slice may treat this as a no-op.
	Prefetch(n int) error
}

// DensityOracle evaluates ln q(s) for an arbitrary configuration under the
// density that produced a Source's stream (spec §6, DensityOracle.logq).
// Consumed by the hybrid-stochastic and hybrid-sequential drivers.
type DensityOracle interface {
	LogQ(s spin.Configuration) float64
}

// RBMOracle is the exchange driver's coupling to a trained Restricted
// Boltzmann Machine: a Gibbs transition and a free-energy functional, both
// over {0,1} visible vectors (spec §4.6, §6).
type RBMOracle interface {
	GibbsStep(v []int8) []int8
	FreeEnergy(v []int8) float64
}
