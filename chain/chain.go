// Package chain holds the mutable state every driver steps forward: the
// current configuration, its cached energy and log-proposal-density, and
// the acceptance bookkeeping spec §3/§7's end-of-run summary reports.
package chain

import (
	"math"

	"isingmcmc/spin"
)

// Kind tags which proposal family produced the last accepted step.
type Kind int

const (
	Local Kind = iota
	Neural
)

func (k Kind) String() string {
	if k == Neural {
		return "neural"
	}
	return "local"
}

// Counters tracks the acceptance bookkeeping spec §3 and §7 require: total
// proposed/accepted, the same split per kind, and neural-after-local
// transitions (needed by the hybrid drivers).
type Counters struct {
	Proposed         int64
	Accepted         int64
	ProposedByKind   [2]int64
	AcceptedByKind   [2]int64
	NeuralAfterLocal int64
}

// ProposeKind records a proposal of the given kind.
func (c *Counters) ProposeKind(k Kind) {
	c.Proposed++
	c.ProposedByKind[k]++
}

// AcceptKind records an acceptance of the given kind, and tracks whether a
// neural acceptance directly follows a local one.
func (c *Counters) AcceptKind(k Kind, prev Kind) {
	c.Accepted++
	c.AcceptedByKind[k]++
	if k == Neural && prev == Local {
		c.NeuralAfterLocal++
	}
}

// Rate returns the overall acceptance rate, 0 if no proposals were made.
func (c *Counters) Rate() float64 {
	if c.Proposed == 0 {
		return 0
	}
	return float64(c.Accepted) / float64(c.Proposed)
}

// RateByKind returns the per-kind acceptance rate, 0 if that kind was never
// proposed.
func (c *Counters) RateByKind(k Kind) float64 {
	if c.ProposedByKind[k] == 0 {
		return 0
	}
	return float64(c.AcceptedByKind[k]) / float64(c.ProposedByKind[k])
}

// State is the concrete chain state from spec §3: the current spin
// configuration, its energy, its log proposal density (may be NaN when the
// driver has no proposal-density notion, e.g. pure local chains), the
// cached log-Boltzmann weight, and which kind produced the current state.
//
// Invariant: E must equal energy.Total(S, couplings) exactly under the
// integer spin model; every driver is responsible for maintaining this by
// replaying ΔH on accepted local flips rather than recomputing from
// scratch, and by recomputing in full whenever an external proposal
// replaces S wholesale.
type State struct {
	S        spin.Configuration
	E        float64
	LnQ      float64
	LnPi     float64
	KindLast Kind
	Counters Counters
}

// New builds a chain state from an initial configuration and its energy,
// leaving LnQ unset (NaN) for drivers with no proposal density.
func New(s spin.Configuration, e, beta float64) *State {
	return &State{
		S:    s,
		E:    e,
		LnQ:  math.NaN(),
		LnPi: -beta * e,
	}
}

// Clone returns a deep copy suitable for emission: spin.Configuration and
// Counters are value types apart from the backing slice, which Clone
// copies so the caller may keep stepping the original state afterward.
func (st *State) Clone() *State {
	return &State{
		S:        spin.Clone(st.S),
		E:        st.E,
		LnQ:      st.LnQ,
		LnPi:     st.LnPi,
		KindLast: st.KindLast,
		Counters: st.Counters,
	}
}
